package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/example/taskboard-demo/domain/task"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTaskNotFound is returned when an id does not resolve to a task owned by
// the requesting user.
var ErrTaskNotFound = errors.New("task not found")

// TaskFilter narrows a task list query. Search is free text split on
// whitespace; a task matches when its title or description contains any of
// the words, case-insensitively. Completed, when non-nil, restricts to tasks
// with exactly that flag.
type TaskFilter struct {
	Search    string
	Completed *bool
}

// TaskRepository handles task persistence using GORM.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns the owner's tasks matching the filter, ordered by due date
// ascending, each with its associated tags. SQLite orders NULLs first, so
// tasks without a due date lead the list.
func (r *TaskRepository) List(ctx context.Context, userID string, filter TaskFilter) ([]domain.Task, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if words := searchWords(filter.Search); len(words) > 0 {
		const match = "lower(title) LIKE ? ESCAPE '\\' OR lower(description) LIKE ? ESCAPE '\\'"
		var cond *gorm.DB
		for _, word := range words {
			pattern := "%" + escapeLike(strings.ToLower(word)) + "%"
			if cond == nil {
				cond = r.db.Where(match, pattern, pattern)
			} else {
				cond = cond.Or(match, pattern, pattern)
			}
		}
		tx = tx.Where(cond)
	}

	if filter.Completed != nil {
		tx = tx.Where("completed = ?", *filter.Completed)
	}

	var tasks []domain.Task
	if err := tx.Preload("Tags").Order("due_date ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID retrieves one of the owner's tasks with its tags.
func (r *TaskRepository) FindByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Preload("Tags").
		First(&task, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Create saves a new task. Tags already populated on the entity are linked
// additively through the join table.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Update persists scalar field changes without touching tag associations.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// ReplaceTags swaps the task's full tag association set for the given tags.
// An empty set clears all associations.
func (r *TaskRepository) ReplaceTags(ctx context.Context, task *domain.Task, tags []domain.Tag) error {
	assoc := r.db.WithContext(ctx).Model(task).Association("Tags")
	if len(tags) == 0 {
		if err := assoc.Clear(); err != nil {
			return fmt.Errorf("failed to clear tag associations: %w", err)
		}
	} else {
		if err := assoc.Replace(&tags); err != nil {
			return fmt.Errorf("failed to replace tag associations: %w", err)
		}
	}
	task.Tags = tags
	return nil
}

// Delete removes one of the owner's tasks along with its tag associations.
// Deleting an id that does not resolve to an owned task is a no-op.
func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task domain.Task
		if err := tx.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to find task: %w", err)
		}
		if err := tx.Model(&task).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to clear tag associations: %w", err)
		}
		if err := tx.Delete(&task).Error; err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

// searchWords splits a free-text query on whitespace, dropping empty tokens.
func searchWords(search string) []string {
	return strings.Fields(search)
}

// escapeLike escapes LIKE wildcards so search words match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
