package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDueDate  = errors.New("model: invalid due date")
	ErrInvalidDueTime  = errors.New("model: invalid due time")
)

// Wire formats for the persisted date and time columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a locally stored task. ReminderID is nil until a reminder has been
// scheduled for it; it is set at most once per row and never reused.
type Task struct {
	ID         int64
	Title      string
	Completed  bool
	Date       string
	Time       string
	Priority   Priority
	ReminderID *string
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDueDate, t.Date)
	}
	if _, err := time.Parse(TimeLayout, t.Time); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDueTime, t.Time)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	return nil
}

// DueAt combines the date and time columns into a single instant in loc.
func (t Task) DueAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, t.Date+" "+t.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidDueDate, t.Date, t.Time)
	}
	return due, nil
}

func (t Task) HasReminder() bool {
	return t.ReminderID != nil && strings.TrimSpace(*t.ReminderID) != ""
}
