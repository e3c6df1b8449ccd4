// Package tasks provides task and tag storage services over GORM + SQLite:
// the filtered task list query, task create/update/delete with tag
// association management, the per-owner tag store and aggregate statistics.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/taskboard-demo/domain/task"
	"github.com/example/taskboard-demo/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TasksModule provides task and tag services.
type TasksModule struct {
	db      *gorm.DB
	service *Service
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule.
func NewModule() *TasksModule {
	dbPath := os.Getenv("TASKBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "taskboard.db"
	}
	return &TasksModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// Start opens the SQLite database, runs migrations and builds the service.
func (m *TasksModule) Start(_ context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}, &domain.Tag{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(NewTaskRepository(db), NewTagRepository(db))

	log.Printf("[tasks] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *TasksModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tasks] Module stopped")
	return nil
}

// SetCache wires the optional Redis read cache into the service. Called from
// main after all modules have started.
func (m *TasksModule) SetCache(c *cache.Cache) {
	if m.service != nil && c != nil {
		m.service.SetCache(c)
		log.Println("[tasks] List query cache enabled")
	}
}

// Health returns the health status of the module.
func (m *TasksModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func(mono.ServiceContainer) error{
		"list": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list", json.Unmarshal, json.Marshal, m.handleList)
		},
		"create": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create", json.Unmarshal, json.Marshal, m.handleCreate)
		},
		"update": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "update", json.Unmarshal, json.Marshal, m.handleUpdate)
		},
		"delete": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "delete", json.Unmarshal, json.Marshal, m.handleDelete)
		},
		"stats": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "stats", json.Unmarshal, json.Marshal, m.handleStats)
		},
		"list-tags": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "list-tags", json.Unmarshal, json.Marshal, m.handleListTags)
		},
		"create-tag": func(c mono.ServiceContainer) error {
			return helper.RegisterTypedRequestReplyService(c, "create-tag", json.Unmarshal, json.Marshal, m.handleCreateTag)
		},
	}

	for name, register := range services {
		if err := register(container); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[tasks] Registered services: list, create, update, delete, stats, list-tags, create-tag")
	return nil
}

// handleList handles the tasks.list service request.
func (m *TasksModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	filter := TaskFilter{Search: req.Search, Completed: req.Completed}
	result, err := m.service.List(ctx, req.UserID, filter)
	if err != nil {
		return ListTasksResponse{}, err
	}
	if result == nil {
		result = []domain.Task{}
	}
	return ListTasksResponse{Tasks: result, Total: len(result)}, nil
}

// handleCreate handles the tasks.create service request.
func (m *TasksModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.Create(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

// handleUpdate handles the tasks.update service request.
func (m *TasksModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.Update(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

// handleDelete handles the tasks.delete service request.
func (m *TasksModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// handleStats handles the tasks.stats service request.
func (m *TasksModule) handleStats(ctx context.Context, req StatsRequest, _ *mono.Msg) (domain.Stats, error) {
	return m.service.Stats(ctx, req.UserID)
}

// handleListTags handles the tasks.list-tags service request.
func (m *TasksModule) handleListTags(ctx context.Context, req ListTagsRequest, _ *mono.Msg) (ListTagsResponse, error) {
	result, err := m.service.ListTags(ctx, req.UserID)
	if err != nil {
		return ListTagsResponse{}, err
	}
	if result == nil {
		result = []domain.Tag{}
	}
	return ListTagsResponse{Tags: result, Total: len(result)}, nil
}

// handleCreateTag handles the tasks.create-tag service request.
func (m *TasksModule) handleCreateTag(ctx context.Context, req CreateTagRequest, _ *mono.Msg) (domain.Tag, error) {
	tag, err := m.service.CreateTag(ctx, req.UserID, req.Name, req.Color)
	if err != nil {
		return domain.Tag{}, err
	}
	return *tag, nil
}
