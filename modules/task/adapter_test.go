package task

import (
	"errors"
	"fmt"
	"testing"

	domain "github.com/example/todo-app/domain/task"
)

func TestNewTaskAdapter_NilContainer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil container")
		}
	}()
	NewTaskAdapter(nil)
}

func TestRemoteError(t *testing.T) {
	notFound := fmt.Errorf("service error: %s: 42", domain.ErrTaskNotFound)
	if got := remoteError(ServiceGetTask, notFound); !errors.Is(got, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound to be restored, got %v", got)
	}

	timeout := errors.New("nats: timeout")
	got := remoteError(ServiceGetTask, timeout)
	if !errors.Is(got, timeout) {
		t.Errorf("expected original error to be wrapped, got %v", got)
	}
	if errors.Is(got, domain.ErrTaskNotFound) {
		t.Error("timeout must not be reported as not found")
	}
}
