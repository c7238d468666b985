// Package tasks is the only place where the task store and the reminder
// scheduler are mutated together.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/okravets/nagadai/internal/badge"
	"github.com/okravets/nagadai/internal/model"
	"github.com/okravets/nagadai/internal/notify"
	"github.com/okravets/nagadai/internal/router"
	"github.com/okravets/nagadai/internal/storage"
)

// ErrReminderNotScheduled carries a create result where the task row exists
// but no reminder could be scheduled for it. The task is valid and
// recoverable; the caller should tell the user no reminder was set.
var ErrReminderNotScheduled = errors.New("tasks: reminder not scheduled")

type Service struct {
	repo    storage.Repository
	sched   notify.Scheduler
	counter *badge.Counter
	logger  *slog.Logger
	loc     *time.Location
}

func NewService(repo storage.Repository, sched notify.Scheduler, counter *badge.Counter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:    repo,
		sched:   sched,
		counter: counter,
		logger:  logger,
		loc:     time.Local,
	}
}

// WithLocation overrides the timezone used to resolve due instants.
func (s *Service) WithLocation(loc *time.Location) *Service {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Create stores the task, schedules its reminder, and writes the returned
// scheduling id back onto the row. A scheduling failure leaves the row in
// place with a nil reminder id and returns the created task together with
// ErrReminderNotScheduled.
func (s *Service) Create(ctx context.Context, draft model.Task) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, err
	}

	id, err := s.repo.CreateTask(ctx, toEntity(draft))
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	draft.ID = id
	defer s.refreshCounter(ctx)

	due, err := draft.DueAt(s.loc)
	if err != nil {
		return draft, fmt.Errorf("%w: %w", ErrReminderNotScheduled, err)
	}

	reminderID, err := s.sched.Schedule(ctx, notify.Request{
		TaskID:   strconv.FormatInt(id, 10),
		Title:    "Reminder: " + draft.Title,
		Body:     "Time to get it done!",
		DeepLink: router.DeepLink(id),
		At:       due,
	})
	if err != nil {
		s.logger.Warn("reminder not scheduled", "task", id, "err", err)
		return draft, fmt.Errorf("%w: %w", ErrReminderNotScheduled, err)
	}

	if err := s.repo.SetReminderID(ctx, id, &reminderID); err != nil {
		// An id the store never recorded would fire for a row a later
		// delete cannot match; take the reminder back out.
		if cancelErr := s.sched.Cancel(ctx, reminderID); cancelErr != nil {
			s.logger.Warn("cancel unpersisted reminder", "task", id, "reminder", reminderID, "err", cancelErr)
		}
		return draft, fmt.Errorf("persist reminder id for task %d: %w", id, err)
	}
	draft.ReminderID = &reminderID
	return draft, nil
}

// Toggle flips completion. The reminder, if any, is left alone: a completed
// task's reminder either fires or is cancelled by a later delete.
func (s *Service) Toggle(ctx context.Context, id int64) error {
	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return fmt.Errorf("load task %d: %w", id, err)
	}
	if err := s.repo.SetCompleted(ctx, id, !row.Completed); err != nil {
		return fmt.Errorf("toggle task %d: %w", id, err)
	}
	s.refreshCounter(ctx)
	return nil
}

// Delete cancels the task's reminder and removes the row as one logical
// unit. An already-deleted task is treated as success, and a reminder the
// subsystem no longer knows about is treated as already cancelled.
func (s *Service) Delete(ctx context.Context, id int64) error {
	row, err := s.repo.GetTask(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load task %d: %w", id, err)
	}

	if row.NotificationID != nil && strings.TrimSpace(*row.NotificationID) != "" {
		if err := s.sched.Cancel(ctx, *row.NotificationID); err != nil {
			// Cancellation failures never block the delete; the reminder may
			// simply have expired already.
			s.logger.Warn("cancel reminder", "task", id, "reminder", *row.NotificationID, "err", err)
		}
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	s.refreshCounter(ctx)
	return nil
}

// DeleteFromSignal deletes by the string task id carried in notification
// payloads and deep links.
func (s *Service) DeleteFromSignal(ctx context.Context, raw string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("tasks: unusable task id %q: %w", raw, err)
	}
	return s.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]model.Task, error) {
	rows, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromEntity(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Task, error) {
	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return fromEntity(row), nil
}

// Refresh recomputes the badge counter from the store.
func (s *Service) Refresh(ctx context.Context) error {
	count, err := s.repo.CountIncomplete(ctx)
	if err != nil {
		return fmt.Errorf("count incomplete: %w", err)
	}
	if s.counter != nil {
		s.counter.Set(count)
	}
	return nil
}

func (s *Service) refreshCounter(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refresh notification counter", "err", err)
	}
}

func toEntity(t model.Task) storage.Task {
	return storage.Task{
		ID:             t.ID,
		Todo:           t.Title,
		Completed:      t.Completed,
		Date:           t.Date,
		Time:           t.Time,
		Priority:       string(t.Priority),
		NotificationID: t.ReminderID,
	}
}

func fromEntity(row storage.Task) model.Task {
	return model.Task{
		ID:         row.ID,
		Title:      row.Todo,
		Completed:  row.Completed,
		Date:       row.Date,
		Time:       row.Time,
		Priority:   model.Priority(row.Priority),
		ReminderID: row.NotificationID,
	}
}
