// Package task defines the task and tag entities shared across modules.
package task

import (
	"time"
)

// Priority is the task priority level.
type Priority string

// Priority levels, ordered LOW < MEDIUM < HIGH < URGENT.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// DefaultTagColor is the color assigned to tags created without one.
const DefaultTagColor = "#3B82F6"

// Task represents a task owned by a single user.
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Priority    Priority   `gorm:"size:10;not null;default:MEDIUM" json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      string     `gorm:"size:36;not null;index" json:"userId"`
	Tags        []Tag      `gorm:"many2many:task_tags" json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Tag represents a user-owned label. Names are unique per owner.
type Tag struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_tags_owner_name" json:"name"`
	Color     string    `gorm:"size:16;not null;default:#3B82F6" json:"color"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_tags_owner_name" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the table name for the Tag entity.
func (Tag) TableName() string {
	return "tags"
}
