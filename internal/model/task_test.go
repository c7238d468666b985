package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidate(t *testing.T) {
	base := Task{
		Title:    "Buy milk",
		Date:     "2025-03-01",
		Time:     "08:00",
		Priority: PriorityLow,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Task)
		want   error
	}{
		{"empty title", func(task *Task) { task.Title = "   " }, nil},
		{"bad date", func(task *Task) { task.Date = "03/01/2025" }, ErrInvalidDueDate},
		{"bad time", func(task *Task) { task.Time = "8am" }, ErrInvalidDueTime},
		{"bad priority", func(task *Task) { task.Priority = "urgent" }, ErrInvalidPriority},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := base
			tc.mutate(&task)
			err := task.Validate()
			if err == nil {
				t.Fatalf("expected validation failure")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTaskDueAt(t *testing.T) {
	task := Task{Title: "Call mom", Date: "2025-03-01", Time: "08:30", Priority: PriorityMedium}
	due, err := task.DueAt(time.UTC)
	if err != nil {
		t.Fatalf("due at: %v", err)
	}
	want := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Fatalf("unexpected due instant: got=%v want=%v", due, want)
	}

	task.Time = "25:99"
	if _, err := task.DueAt(time.UTC); err == nil {
		t.Fatalf("expected error for invalid time")
	}
}

func TestHasReminder(t *testing.T) {
	task := Task{}
	if task.HasReminder() {
		t.Fatalf("nil reminder id reported as set")
	}
	empty := "  "
	task.ReminderID = &empty
	if task.HasReminder() {
		t.Fatalf("blank reminder id reported as set")
	}
	id := "rem-1"
	task.ReminderID = &id
	if !task.HasReminder() {
		t.Fatalf("reminder id not reported")
	}
}
