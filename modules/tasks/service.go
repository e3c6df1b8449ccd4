package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	domain "github.com/example/taskboard-demo/domain/task"
	"github.com/example/taskboard-demo/modules/cache"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Validation errors detected before any storage access.
var (
	// ErrTitleRequired is returned when a task is created or renamed with an
	// empty title.
	ErrTitleRequired = errors.New("title is required")
	// ErrDueDateRequired is returned when a task is created without a due date.
	ErrDueDateRequired = errors.New("due date is required")
	// ErrInvalidPriority is returned when the priority is not a known level.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrTaskIDRequired is returned when an update or delete omits the task id.
	ErrTaskIDRequired = errors.New("task id is required")
	// ErrTagNameRequired is returned when a tag is created with an empty name.
	ErrTagNameRequired = errors.New("tag name is required")
)

// Service implements the task query and mutation operations. Every operation
// takes an already-resolved user id; identity resolution happens once at the
// HTTP boundary and is never re-derived here.
type Service struct {
	tasks   *TaskRepository
	tags    *TagRepository
	cache   cache.CacheService
	sfGroup singleflight.Group
}

// NewService creates a new task service. The cache may be nil, in which case
// every list query goes straight to the database.
func NewService(tasks *TaskRepository, tags *TagRepository) *Service {
	return &Service{
		tasks: tasks,
		tags:  tags,
	}
}

// SetCache enables the read cache for list queries.
func (s *Service) SetCache(c cache.CacheService) {
	s.cache = c
}

// List returns the owner's tasks matching the filter, each with its tags,
// ordered by due date ascending. Results are cached per (owner, filter) when
// a cache is wired; singleflight collapses concurrent misses for the same key.
func (s *Service) List(ctx context.Context, userID string, filter TaskFilter) ([]domain.Task, error) {
	if s.cache == nil {
		return s.tasks.List(ctx, userID, filter)
	}

	key := listCacheKey(userID, filter)

	var cached []domain.Task
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[tasks] Cache error for %s: %v", key, err)
	}
	if found {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.tasks.List(ctx, userID, filter)
	})
	if err != nil {
		return nil, err
	}
	result := val.([]domain.Task)

	if err := s.cache.Set(ctx, key, result); err != nil {
		log.Printf("[tasks] Failed to cache %s: %v", key, err)
	}
	return result, nil
}

// Create validates and saves a new task. Tag ids are connected additively;
// the lookup is scoped to the owner, so ids belonging to other users are
// ignored rather than linked.
func (s *Service) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if req.DueDate == nil {
		return nil, ErrDueDateRequired
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		UserID:      req.UserID,
		Tags:        []domain.Tag{},
	}

	if len(req.TagIDs) > 0 {
		tags, err := s.tags.FindByIDs(ctx, req.UserID, req.TagIDs)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.UserID)
	return task, nil
}

// Update applies a partial update to one of the owner's tasks. Fields left
// nil are unchanged. TagIDs follows set semantics: when present the full
// association set is replaced (an empty list clears it); when omitted the
// existing associations are kept as they are.
func (s *Service) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	if req.ID == "" {
		return nil, ErrTaskIDRequired
	}

	task, err := s.tasks.FindByID(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		tags, err := s.tags.FindByIDs(ctx, req.UserID, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.tasks.ReplaceTags(ctx, task, tags); err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx, req.UserID)
	return task, nil
}

// Delete removes one of the owner's tasks and its tag associations. Deleting
// an id that does not resolve to an owned task still succeeds.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrTaskIDRequired
	}
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Stats recomputes aggregate counts from a fresh snapshot of the owner's
// full task list. Nothing is persisted.
func (s *Service) Stats(ctx context.Context, userID string) (domain.Stats, error) {
	snapshot, err := s.tasks.List(ctx, userID, TaskFilter{})
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(snapshot), nil
}

// ListTags returns the owner's tags ordered by name.
func (s *Service) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	return s.tags.List(ctx, userID)
}

// CreateTag validates and saves a new tag with the default color when none
// is given. A name the owner already uses fails with ErrDuplicateTag.
func (s *Service) CreateTag(ctx context.Context, userID, name, color string) (*domain.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrTagNameRequired
	}
	if color == "" {
		color = domain.DefaultTagColor
	}

	tag := &domain.Tag{
		ID:     uuid.New().String(),
		Name:   name,
		Color:  color,
		UserID: userID,
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// invalidate drops every cached list for the owner after a mutation.
func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "user:"+userID+":*"); err != nil {
		log.Printf("[tasks] Failed to invalidate cache for user %s: %v", userID, err)
	}
}

// listCacheKey builds the cache key for a (owner, filter) list query.
func listCacheKey(userID string, filter TaskFilter) string {
	completed := "any"
	if filter.Completed != nil {
		completed = strconv.FormatBool(*filter.Completed)
	}
	return fmt.Sprintf("user:%s:list:%s:%s", userID, completed, filter.Search)
}
