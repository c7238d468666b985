package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nagadai-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id, err := repo.CreateTask(ctx, Task{
		Todo:     "Buy milk",
		Date:     "2025-03-01",
		Time:     "08:00",
		Priority: "low",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := repo.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Todo != "Buy milk" || got.Completed || got.NotificationID != nil {
		t.Fatalf("unexpected task: %#v", got)
	}

	got.Todo = "Buy oat milk"
	got.Priority = "high"
	if err := repo.UpdateTask(ctx, got); err != nil {
		t.Fatalf("update task: %v", err)
	}

	items, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(items) != 1 || items[0].Todo != "Buy oat milk" || items[0].Priority != "high" {
		t.Fatalf("unexpected list: %#v", items)
	}

	if err := repo.DeleteTask(ctx, id); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.DeleteTask(ctx, id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestMonotonicIDAssignment(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first, err := repo.CreateTask(ctx, Task{Todo: "a", Date: "2025-03-01", Time: "08:00", Priority: "low"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := repo.CreateTask(ctx, Task{Todo: "b", Date: "2025-03-01", Time: "09:00", Priority: "low"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second <= first {
		t.Fatalf("expected monotonic ids: first=%d second=%d", first, second)
	}
}

func TestSetReminderID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	id, err := repo.CreateTask(ctx, Task{Todo: "Water plants", Date: "2025-03-02", Time: "10:00", Priority: "medium"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	reminder := "rem-abc"
	if err := repo.SetReminderID(ctx, id, &reminder); err != nil {
		t.Fatalf("set reminder id: %v", err)
	}
	got, err := repo.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.NotificationID == nil || *got.NotificationID != reminder {
		t.Fatalf("reminder id not persisted: %#v", got)
	}

	if err := repo.SetReminderID(ctx, id, nil); err != nil {
		t.Fatalf("clear reminder id: %v", err)
	}
	got, err = repo.GetTask(ctx, id)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.NotificationID != nil {
		t.Fatalf("reminder id not cleared: %#v", got)
	}

	if err := repo.SetReminderID(ctx, 9999, &reminder); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown id, got: %v", err)
	}
}

func TestSetCompletedAndCountIncomplete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first, err := repo.CreateTask(ctx, Task{Todo: "a", Date: "2025-03-01", Time: "08:00", Priority: "low"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := repo.CreateTask(ctx, Task{Todo: "b", Date: "2025-03-01", Time: "09:00", Priority: "low"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	count, err := repo.CountIncomplete(ctx)
	if err != nil {
		t.Fatalf("count incomplete: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 incomplete, got %d", count)
	}

	if err := repo.SetCompleted(ctx, first, true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	count, err = repo.CountIncomplete(ctx)
	if err != nil {
		t.Fatalf("count incomplete: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 incomplete, got %d", count)
	}

	if err := repo.SetCompleted(ctx, 9999, true); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown id, got: %v", err)
	}
}
