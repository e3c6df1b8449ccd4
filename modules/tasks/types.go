package tasks

import (
	"time"

	domain "github.com/example/taskboard-demo/domain/task"
)

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct {
	UserID    string `json:"userId"`
	Search    string `json:"search,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
}

// ListTasksResponse is the response containing the filtered task list.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	TagIDs      []string   `json:"tagIds,omitempty"`
}

// UpdateTaskRequest is the request for partially updating a task. Nil fields
// are left unchanged; TagIDs, when non-nil, replaces the full tag set.
type UpdateTaskRequest struct {
	UserID      string     `json:"userId"`
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	TagIDs      *[]string  `json:"tagIds,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"userId"`
	ID     string `json:"id"`
}

// DeleteTaskResponse confirms a delete.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// StatsRequest is the request for aggregate task statistics.
type StatsRequest struct {
	UserID string `json:"userId"`
}

// ListTagsRequest is the request for listing tags.
type ListTagsRequest struct {
	UserID string `json:"userId"`
}

// ListTagsResponse is the response containing the owner's tags.
type ListTagsResponse struct {
	Tags  []domain.Tag `json:"tags"`
	Total int          `json:"total"`
}

// CreateTagRequest is the request for creating a tag.
type CreateTagRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
}
