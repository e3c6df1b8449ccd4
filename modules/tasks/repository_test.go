package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/example/taskboard-demo/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Task{}, &domain.Tag{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func dueOn(t *testing.T, date string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", date, err)
	}
	return &parsed
}

func createTask(t *testing.T, db *gorm.DB, userID, title, description string, due *time.Time, completed bool, priority domain.Priority) *domain.Task {
	t.Helper()
	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Completed:   completed,
		Priority:    priority,
		DueDate:     due,
		UserID:      userID,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

func createTag(t *testing.T, db *gorm.DB, userID, name string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{
		ID:     uuid.New().String(),
		Name:   name,
		Color:  domain.DefaultTagColor,
		UserID: userID,
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

func titles(tasks []domain.Task) []string {
	result := make([]string, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, task.Title)
	}
	return result
}

func TestTaskRepository_List_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	userID := uuid.New().String()

	createTask(t, db, userID, "Buy milk", "from the corner shop", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)
	createTask(t, db, userID, "Write report", "quarterly numbers", dueOn(t, "2025-01-02"), false, domain.PriorityMedium)
	createTask(t, db, userID, "Call plumber", "kitchen sink leaks milk... no, water", dueOn(t, "2025-01-03"), false, domain.PriorityMedium)

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{
			name:   "single word matches title",
			search: "milk",
			want:   []string{"Buy milk", "Call plumber"},
		},
		{
			name:   "word matches description only",
			search: "quarterly",
			want:   []string{"Write report"},
		},
		{
			name:   "multiple words are a union",
			search: "report plumber",
			want:   []string{"Write report", "Call plumber"},
		},
		{
			name:   "case insensitive",
			search: "MILK",
			want:   []string{"Buy milk", "Call plumber"},
		},
		{
			name:   "blank search imposes no filter",
			search: "   ",
			want:   []string{"Buy milk", "Write report", "Call plumber"},
		},
		{
			name:   "empty search imposes no filter",
			search: "",
			want:   []string{"Buy milk", "Write report", "Call plumber"},
		},
		{
			name:   "no match yields empty set",
			search: "xyzzy",
			want:   []string{},
		},
		{
			name:   "like wildcards match literally",
			search: "%",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, userID, TaskFilter{Search: tt.search})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			gotTitles := titles(got)
			if len(gotTitles) != len(tt.want) {
				t.Fatalf("expected titles %v, got %v", tt.want, gotTitles)
			}
			for i, want := range tt.want {
				if gotTitles[i] != want {
					t.Errorf("expected titles %v, got %v", tt.want, gotTitles)
					break
				}
			}
		})
	}
}

func TestTaskRepository_List_CompletedFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	userID := uuid.New().String()

	createTask(t, db, userID, "Done", "", dueOn(t, "2025-01-01"), true, domain.PriorityMedium)
	createTask(t, db, userID, "Open", "", dueOn(t, "2025-01-02"), false, domain.PriorityMedium)

	boolPtr := func(b bool) *bool { return &b }

	t.Run("completed true", func(t *testing.T) {
		got, err := repo.List(ctx, userID, TaskFilter{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "Done" {
			t.Errorf("expected only completed task, got %v", titles(got))
		}
	})

	t.Run("completed false", func(t *testing.T) {
		got, err := repo.List(ctx, userID, TaskFilter{Completed: boolPtr(false)})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "Open" {
			t.Errorf("expected only pending task, got %v", titles(got))
		}
	})

	t.Run("omitted returns both", func(t *testing.T) {
		got, err := repo.List(ctx, userID, TaskFilter{})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected both tasks, got %v", titles(got))
		}
	})
}

func TestTaskRepository_List_OrderedByDueDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	userID := uuid.New().String()

	createTask(t, db, userID, "February", "", dueOn(t, "2025-02-01"), false, domain.PriorityMedium)
	createTask(t, db, userID, "January", "", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)
	createTask(t, db, userID, "Someday", "", nil, false, domain.PriorityMedium)

	got, err := repo.List(ctx, userID, TaskFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// SQLite orders NULLs first ascending: tasks without a due date lead.
	want := []string{"Someday", "January", "February"}
	gotTitles := titles(got)
	for i, title := range want {
		if i >= len(gotTitles) || gotTitles[i] != title {
			t.Fatalf("expected order %v, got %v", want, gotTitles)
		}
	}
}

func TestTaskRepository_List_ScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := uuid.New().String()
	bob := uuid.New().String()

	createTask(t, db, alice, "Alice task", "", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)
	createTask(t, db, bob, "Bob task", "", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)

	got, err := repo.List(ctx, alice, TaskFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Alice task" {
		t.Errorf("expected only Alice's task, got %v", titles(got))
	}
}

func TestTaskRepository_List_PreloadsTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	userID := uuid.New().String()

	tag := createTag(t, db, userID, "work")
	task := createTask(t, db, userID, "Tagged", "", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)
	if err := db.Model(task).Association("Tags").Append(tag); err != nil {
		t.Fatalf("failed to associate tag: %v", err)
	}

	got, err := repo.List(ctx, userID, TaskFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || len(got[0].Tags) != 1 || got[0].Tags[0].Name != "work" {
		t.Errorf("expected task with tag 'work', got %+v", got)
	}
}

func TestTaskRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := uuid.New().String()
	bob := uuid.New().String()

	task := createTask(t, db, alice, "Mine", "", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)

	t.Run("owner finds task", func(t *testing.T) {
		got, err := repo.FindByID(ctx, alice, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if got.ID != task.ID {
			t.Errorf("expected id %q, got %q", task.ID, got.ID)
		}
	})

	t.Run("other user gets not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, bob, task.ID)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("unknown id gets not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, alice, "no-such-id")
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestTaskRepository_ReplaceTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	userID := uuid.New().String()

	urgent := createTag(t, db, userID, "urgent")
	home := createTag(t, db, userID, "home")
	task := createTask(t, db, userID, "Tagged", "", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)
	if err := db.Model(task).Association("Tags").Append(urgent); err != nil {
		t.Fatalf("failed to associate tag: %v", err)
	}

	t.Run("replace swaps the full set", func(t *testing.T) {
		if err := repo.ReplaceTags(ctx, task, []domain.Tag{*home}); err != nil {
			t.Fatalf("ReplaceTags() error = %v", err)
		}
		got, err := repo.FindByID(ctx, userID, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if len(got.Tags) != 1 || got.Tags[0].Name != "home" {
			t.Errorf("expected only 'home' tag, got %+v", got.Tags)
		}
	})

	t.Run("empty set clears associations", func(t *testing.T) {
		if err := repo.ReplaceTags(ctx, task, nil); err != nil {
			t.Fatalf("ReplaceTags() error = %v", err)
		}
		got, err := repo.FindByID(ctx, userID, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if len(got.Tags) != 0 {
			t.Errorf("expected no tags, got %+v", got.Tags)
		}
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := uuid.New().String()
	bob := uuid.New().String()

	t.Run("removes task and associations", func(t *testing.T) {
		tag := createTag(t, db, alice, "chores")
		task := createTask(t, db, alice, "Doomed", "", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)
		if err := db.Model(task).Association("Tags").Append(tag); err != nil {
			t.Fatalf("failed to associate tag: %v", err)
		}

		if err := repo.Delete(ctx, alice, task.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if _, err := repo.FindByID(ctx, alice, task.ID); !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
		}

		var joinCount int64
		if err := db.Table("task_tags").Where("task_id = ?", task.ID).Count(&joinCount).Error; err != nil {
			t.Fatalf("failed to count join rows: %v", err)
		}
		if joinCount != 0 {
			t.Errorf("expected no join rows after delete, got %d", joinCount)
		}

		// The tag itself survives the task.
		var tagCount int64
		if err := db.Model(&domain.Tag{}).Where("id = ?", tag.ID).Count(&tagCount).Error; err != nil {
			t.Fatalf("failed to count tags: %v", err)
		}
		if tagCount != 1 {
			t.Errorf("expected tag to survive task delete, got count %d", tagCount)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		if err := repo.Delete(ctx, alice, "no-such-id"); err != nil {
			t.Errorf("Delete() of unknown id should succeed, got %v", err)
		}
	})

	t.Run("cannot delete another user's task", func(t *testing.T) {
		task := createTask(t, db, alice, "Protected", "", dueOn(t, "2025-01-01"), false, domain.PriorityMedium)

		if err := repo.Delete(ctx, bob, task.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if _, err := repo.FindByID(ctx, alice, task.ID); err != nil {
			t.Errorf("task should still exist for its owner, got %v", err)
		}
	})
}
