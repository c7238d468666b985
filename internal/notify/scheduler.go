package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTriggerTime = errors.New("notify: invalid trigger time")

// SchedulingError reports that the reminder subsystem rejected a schedule
// request. Callers must not persist a reminder id when they receive one.
type SchedulingError struct {
	Reason error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("notify: scheduling failed: %v", e.Reason)
}

func (e *SchedulingError) Unwrap() error {
	return e.Reason
}

// Request describes a one-shot reminder. TaskID and DeepLink travel with the
// delivery so a later response can be traced back to the task.
type Request struct {
	TaskID   string
	Title    string
	Body     string
	DeepLink string
	At       time.Time
}

// Delivery is a fired reminder handed to the consumer.
type Delivery struct {
	ReminderID string
	TaskID     string
	Title      string
	Body       string
	DeepLink   string
	At         time.Time
}

// Scheduler schedules and cancels one-shot reminders. Cancel is idempotent:
// an identifier that already fired or never existed is not an error.
type Scheduler interface {
	Schedule(ctx context.Context, req Request) (string, error)
	Cancel(ctx context.Context, id string) error
}
