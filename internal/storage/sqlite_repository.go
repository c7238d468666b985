package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (todo, completed, date, time, priority, notification_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Todo, boolInt(in.Completed), in.Date, in.Time, in.Priority, nullString(in.NotificationID),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, todo, completed, date, time, priority, notification_id
		FROM todos WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET todo = ?, completed = ?, date = ?, time = ?, priority = ?, notification_id = ?
		WHERE id = ?`,
		in.Todo, boolInt(in.Completed), in.Date, in.Time, in.Priority, nullString(in.NotificationID), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) SetReminderID(ctx context.Context, id int64, reminderID *string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE todos SET notification_id = ? WHERE id = ?`,
		nullString(reminderID), id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE todos SET completed = ? WHERE id = ?`,
		boolInt(completed), id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, todo, completed, date, time, priority, notification_id
		FROM todos ORDER BY date ASC, time ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CountIncomplete(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE completed = 0`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var notification sql.NullString
	if err := s.Scan(&out.ID, &out.Todo, &completed, &out.Date, &out.Time, &out.Priority, &notification); err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	if notification.Valid && notification.String != "" {
		value := notification.String
		out.NotificationID = &value
	}
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
