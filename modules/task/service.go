package task

import (
	"context"
	"fmt"
	"time"

	domain "github.com/example/todo-app/domain/task"
	"github.com/google/uuid"
)

// Notifier is told about every successful mutation so that live views can
// recompute. Implementations must not fail the mutation.
type Notifier interface {
	TaskCreated(ctx context.Context, task *domain.Task)
	TaskUpdated(ctx context.Context, taskID string, fields []string)
	TaskDeleted(ctx context.Context, taskID string)
}

// Edit carries the new values applied by Service.EditTask. A nil DueDate
// clears the due date.
type Edit struct {
	Title    string
	Category string
	DueDate  *time.Time
}

// Service provides the task mutation operations on top of a Store.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

var _ TaskPort = (*Service)(nil)

// NewService creates a new task service. notifier may be nil.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// CreateTask stores a new task built from raw input. It reports created=false,
// with no error and without touching the store, when the trimmed title is empty.
func (s *Service) CreateTask(ctx context.Context, title, category string) (*domain.Task, bool, error) {
	task, ok := domain.NewTask(s.newID(), title, category, s.now())
	if !ok {
		return nil, false, nil
	}

	if err := s.store.Insert(ctx, task); err != nil {
		return nil, false, fmt.Errorf("failed to save task: %w", err)
	}

	if s.notifier != nil {
		s.notifier.TaskCreated(ctx, task)
	}
	return task, true, nil
}

// GetTask returns a task by ID.
func (s *Service) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.store.FindByID(ctx, taskID)
}

// ListTasks returns the full collection, newest first.
func (s *Service) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.store.QueryAll(ctx)
}

// ToggleTask flips the completion flag of a task.
func (s *Service) ToggleTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	if err := s.store.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	if s.notifier != nil {
		s.notifier.TaskUpdated(ctx, task.ID, []string{"is_completed"})
	}
	return task, nil
}

// EditTask overwrites title, category and due date of a task. Unlike
// CreateTask, title and category are stored as given.
func (s *Service) EditTask(ctx context.Context, taskID string, edit Edit) (*domain.Task, error) {
	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var fields []string
	if task.Title != edit.Title {
		fields = append(fields, "title")
	}
	if task.Category != edit.Category {
		fields = append(fields, "category")
	}

	var due *time.Time
	if edit.DueDate != nil {
		d := domain.StartOfDay(*edit.DueDate)
		due = &d
	}
	if !sameDate(task.DueDate, due) {
		fields = append(fields, "due_date")
	}

	task.Title = edit.Title
	task.Category = edit.Category
	task.DueDate = due
	if err := s.store.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to edit task: %w", err)
	}

	if s.notifier != nil {
		s.notifier.TaskUpdated(ctx, task.ID, fields)
	}
	return task, nil
}

// DeleteTask permanently removes a task.
func (s *Service) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.store.Delete(ctx, taskID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.TaskDeleted(ctx, taskID)
	}
	return nil
}

// Seed inserts tasks as-is. It is used to load sample data into an empty store.
func (s *Service) Seed(ctx context.Context, tasks []*domain.Task) error {
	for _, task := range tasks {
		if err := s.store.Insert(ctx, task); err != nil {
			return fmt.Errorf("failed to seed task %s: %w", task.ID, err)
		}
		if s.notifier != nil {
			s.notifier.TaskCreated(ctx, task)
		}
	}
	return nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
