package task

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/todo-app/domain/task"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE,
	due_date     TIMESTAMPTZ,
	category     TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at DESC);
`

const selectTaskColumns = `SELECT id, title, is_completed, due_date, category, created_at FROM tasks`

// PostgresStore provides task storage in PostgreSQL through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tasks table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTasksTable); err != nil {
		return fmt.Errorf("failed to migrate tasks table: %w", err)
	}
	return nil
}

// Insert stores a new task.
func (s *PostgresStore) Insert(ctx context.Context, task *domain.Task) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tasks (id, title, is_completed, due_date, category, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		task.ID, task.Title, task.IsCompleted, task.DueDate, task.Category, task.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task already exists: %s", task.ID)
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Update persists title, completion, due date and category of an existing task.
func (s *PostgresStore) Update(ctx context.Context, task *domain.Task) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tasks SET title = $2, is_completed = $3, due_date = $4, category = $5 WHERE id = $1`,
		task.ID, task.Title, task.IsCompleted, task.DueDate, task.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	return nil
}

// Delete removes a task by ID.
func (s *PostgresStore) Delete(ctx context.Context, taskID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return nil
}

// FindByID finds a task by ID.
func (s *PostgresStore) FindByID(ctx context.Context, taskID string) (*domain.Task, error) {
	row := s.pool.QueryRow(ctx, selectTaskColumns+` WHERE id = $1`, taskID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// QueryAll returns all tasks ordered by creation time, newest first.
func (s *PostgresStore) QueryAll(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.pool.Query(ctx, selectTaskColumns+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return tasks, nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(&task.ID, &task.Title, &task.IsCompleted, &task.DueDate, &task.Category, &task.CreatedAt); err != nil {
		return nil, err
	}
	if task.DueDate != nil {
		due := task.DueDate.Local()
		task.DueDate = &due
	}
	task.CreatedAt = task.CreatedAt.Local()
	return &task, nil
}

// isUniqueViolation checks if err is a PostgreSQL unique violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
