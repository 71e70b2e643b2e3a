package listview

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domain "github.com/example/todo-app/domain/task"
	"github.com/example/todo-app/events"
	"github.com/go-monolith/mono/pkg/types"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

func TestModule_Metadata(t *testing.T) {
	m := NewModule(&mockLogger{})

	if m.Name() != "listview" {
		t.Errorf("Name() = %q, want 'listview'", m.Name())
	}
	deps := m.Dependencies()
	if len(deps) != 1 || deps[0] != "task" {
		t.Errorf("Dependencies() = %v, want [task]", deps)
	}
}

func TestModule_StartWithoutSource(t *testing.T) {
	m := NewModule(&mockLogger{})
	if err := m.Start(context.Background()); err == nil {
		t.Error("expected error when task dependency is not set")
	}
}

func TestModule_EventsInvalidateView(t *testing.T) {
	source := &countingSource{tasks: []*domain.Task{{ID: "1", Title: "a", Category: "Work", CreatedAt: viewNow}}}
	m := NewModule(&mockLogger{})
	ctx := context.Background()

	// Events arriving before Start are ignored.
	if err := m.handleTaskCreated(ctx, events.TaskCreatedEvent{TaskID: "0"}, nil); err != nil {
		t.Fatalf("handleTaskCreated() error = %v", err)
	}

	m.source = source
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if _, err := m.project(ctx, ProjectRequest{}, nil); err != nil {
		t.Fatalf("project() error = %v", err)
	}
	if _, err := m.project(ctx, ProjectRequest{}, nil); err != nil {
		t.Fatalf("project() error = %v", err)
	}
	if source.lists != 1 {
		t.Fatalf("expected 1 load, got %d", source.lists)
	}

	handlers := []func() error{
		func() error { return m.handleTaskCreated(ctx, events.TaskCreatedEvent{TaskID: "2"}, nil) },
		func() error { return m.handleTaskUpdated(ctx, events.TaskUpdatedEvent{TaskID: "1"}, nil) },
		func() error { return m.handleTaskDeleted(ctx, events.TaskDeletedEvent{TaskID: "2"}, nil) },
	}
	for i, handle := range handlers {
		if err := handle(); err != nil {
			t.Fatalf("handler %d error = %v", i, err)
		}
		if _, err := m.categories(ctx, CategoriesRequest{}, nil); err != nil {
			t.Fatalf("categories() error = %v", err)
		}
		if source.lists != i+2 {
			t.Errorf("after event %d: expected %d loads, got %d", i, i+2, source.lists)
		}
	}
}

func TestModule_DeletePositionsHandler(t *testing.T) {
	source := &countingSource{tasks: []*domain.Task{
		{ID: "old", Title: "old", Category: "Work", CreatedAt: viewNow.Add(-1)},
		{ID: "new", Title: "new", Category: "Work", CreatedAt: viewNow},
	}}
	m := NewModule(&mockLogger{})
	m.source = source
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := m.deletePositions(context.Background(), DeletePositionsRequest{
		Query:     domain.Query{Sort: domain.SortCreatedAtAsc},
		Positions: []int{1},
	}, nil)
	if err != nil {
		t.Fatalf("deletePositions() error = %v", err)
	}
	if len(resp.Deleted) != 1 || resp.Deleted[0] != "new" {
		t.Errorf("Deleted = %v, want [new]", resp.Deleted)
	}

	_, err = m.deletePositions(context.Background(), DeletePositionsRequest{Positions: []int{5}}, nil)
	if !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("expected ErrPositionOutOfRange, got %v", err)
	}
}

func TestRemoteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "position", err: fmt.Errorf("remote: %s: 4 (rows: 2)", ErrPositionOutOfRange), want: ErrPositionOutOfRange},
		{name: "sort", err: fmt.Errorf("remote: %s: \"x\"", domain.ErrInvalidSortOption), want: domain.ErrInvalidSortOption},
		{name: "not found", err: fmt.Errorf("remote: %s: abc", domain.ErrTaskNotFound), want: domain.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := remoteError(ServiceProject, tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("remoteError() = %v, want wrapping %v", got, tt.want)
			}
		})
	}

	plain := errors.New("nats: timeout")
	got := remoteError(ServiceProject, plain)
	if !errors.Is(got, plain) {
		t.Errorf("remoteError() should wrap the original error, got %v", got)
	}
	for _, sentinel := range remoteErrors {
		if errors.Is(got, sentinel) {
			t.Errorf("remoteError() unexpectedly matched %v", sentinel)
		}
	}
}
