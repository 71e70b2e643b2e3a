package task

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	domain "github.com/example/todo-app/domain/task"
)

// Store persists task records. QueryAll returns every task, newest first.
// Update, Delete and FindByID return domain.ErrTaskNotFound for unknown IDs.
type Store interface {
	Insert(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, taskID string) error
	FindByID(ctx context.Context, taskID string) (*domain.Task, error)
	QueryAll(ctx context.Context) ([]*domain.Task, error)
	Ping(ctx context.Context) error
	Close() error
}

// MemoryStore provides in-memory task storage.
type MemoryStore struct {
	tasks map[string]*domain.Task
	mu    sync.RWMutex
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*domain.Task),
	}
}

// Insert stores a new task.
func (s *MemoryStore) Insert(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tasks[task.ID]; found {
		return fmt.Errorf("task already exists: %s", task.ID)
	}
	s.tasks[task.ID] = task.Clone()
	return nil
}

// Update replaces the stored copy of an existing task.
func (s *MemoryStore) Update(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tasks[task.ID]; !found {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	s.tasks[task.ID] = task.Clone()
	return nil
}

// Delete removes a task by ID.
func (s *MemoryStore) Delete(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tasks[taskID]; !found {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	delete(s.tasks, taskID)
	return nil
}

// FindByID finds a task by ID.
func (s *MemoryStore) FindByID(_ context.Context, taskID string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, found := s.tasks[taskID]
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return task.Clone(), nil
}

// QueryAll returns copies of all tasks ordered by creation time, newest first.
func (s *MemoryStore) QueryAll(_ context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		result = append(result, task.Clone())
	}
	slices.SortFunc(result, func(a, b *domain.Task) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
