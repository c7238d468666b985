package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okravets/nagadai/internal/badge"
	"github.com/okravets/nagadai/internal/config"
	"github.com/okravets/nagadai/internal/logging"
	"github.com/okravets/nagadai/internal/notify"
	"github.com/okravets/nagadai/internal/pending"
	"github.com/okravets/nagadai/internal/remote"
	"github.com/okravets/nagadai/internal/router"
	"github.com/okravets/nagadai/internal/storage"
	"github.com/okravets/nagadai/internal/tasks"
	"github.com/okravets/nagadai/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "nagadai: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.RuntimeConfigFromEnv(config.DefaultRuntimeConfig())

	logger, logCloser, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logCloser.Close()

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	engine := notify.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	counter := badge.NewCounter()
	svc := tasks.NewService(repo, engine, counter, logger)

	events := update.NewEvents()
	machine := pending.NewMachine(events.PostConfirm, cfg.ConfirmDelay)
	rt := router.New(logger, events.PostShowTasks, machine)
	counter.Subscribe(events.PostBadge)

	ctx := context.Background()
	if err := svc.Refresh(ctx); err != nil {
		logger.Warn("initial badge refresh failed", "err", err)
	}

	// Reminders scheduled before the last shutdown are gone with the
	// process; reschedule anything still in the future.
	if err := rescheduleReminders(ctx, svc, repo, engine, logger); err != nil {
		logger.Warn("reschedule reminders", "err", err)
	}

	// A deep link on the command line is a cold launch from a
	// notification; replay it exactly once before the UI starts.
	rt.ReplayLaunch(router.ArgsLaunch{Args: os.Args[1:]})

	var notifier notify.DesktopNotifier = notify.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = notify.ExecDesktopNotifier{}
	}

	m := update.NewModel(update.Deps{
		Service:        svc,
		Pending:        machine,
		Router:         rt,
		Counter:        counter,
		RemoteClient:   remote.NewClient(cfg.DemoAPIBaseURL, 10*time.Second),
		Notifier:       notifier,
		DesktopEnabled: cfg.DesktopNotifications,
		Logger:         logger,
	})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())

	// Pump external events into the program loop.
	go func() {
		for msg := range events {
			program.Send(msg)
		}
	}()
	go func() {
		for d := range engine.C() {
			program.Send(update.ReminderDeliveredMsg{Delivery: d})
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// rescheduleReminders re-registers future reminders for incomplete tasks.
// Past-due or unparseable rows keep their stored reminder id untouched.
func rescheduleReminders(ctx context.Context, svc *tasks.Service, repo storage.Repository, engine *notify.Engine, logger *slog.Logger) error {
	items, err := svc.List(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, task := range items {
		if task.Completed || !task.HasReminder() {
			continue
		}
		due, err := task.DueAt(time.Local)
		if err != nil || !due.After(now) {
			continue
		}
		id, err := engine.Schedule(ctx, notify.Request{
			TaskID:   fmt.Sprintf("%d", task.ID),
			Title:    task.Title,
			Body:     fmt.Sprintf("due %s %s", task.Date, task.Time),
			DeepLink: router.DeepLink(task.ID),
			At:       due,
		})
		if err != nil {
			logger.Warn("reschedule reminder", "task", task.ID, "err", err)
			continue
		}
		if err := repo.SetReminderID(ctx, task.ID, &id); err != nil {
			logger.Warn("store rescheduled reminder id", "task", task.ID, "err", err)
			// Keep the stored id authoritative: an untracked reminder would
			// outlive its row's delete.
			if cancelErr := engine.Cancel(ctx, id); cancelErr != nil {
				logger.Warn("cancel untracked reminder", "task", task.ID, "reminder", id, "err", cancelErr)
			}
		}
	}
	return nil
}
