package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the single source of truth for task existence and completion
// state. Implementations guarantee per-row atomicity only; callers serialize
// multi-row flows.
type Repository interface {
	// CreateTask inserts a row and returns the store-assigned id.
	CreateTask(ctx context.Context, in Task) (int64, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	// SetReminderID records the scheduling identifier returned by the
	// reminder subsystem. Passing nil clears it.
	SetReminderID(ctx context.Context, id int64, reminderID *string) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context) ([]Task, error)
	// CountIncomplete reports how many rows have completed = false; it backs
	// the derived notification counter.
	CountIncomplete(ctx context.Context) (int, error)
}
