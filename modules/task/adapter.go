package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/todo-app/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// It implements TaskPort for modules that depend on "task".
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, title, category string) (*domain.Task, bool, error) {
	req := CreateTaskRequest{Title: title, Category: category}
	var resp CreateTaskResponse
	if err := a.call(ctx, ServiceCreateTask, &req, &resp); err != nil {
		return nil, false, err
	}
	if !resp.Created || resp.Task == nil {
		return nil, false, nil
	}
	return resp.Task.toDomain(), true, nil
}

// GetTask retrieves a task via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp TaskResponse
	if err := a.call(ctx, ServiceGetTask, &req, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// ListTasks retrieves the full collection via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, ServiceListTasks, &ListTasksRequest{}, &resp); err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(resp.Tasks))
	for i := range resp.Tasks {
		tasks = append(tasks, resp.Tasks[i].toDomain())
	}
	return tasks, nil
}

// ToggleTask flips completion via the toggle-task service.
func (a *taskAdapter) ToggleTask(ctx context.Context, taskID string) (*domain.Task, error) {
	req := ToggleTaskRequest{TaskID: taskID}
	var resp TaskResponse
	if err := a.call(ctx, ServiceToggleTask, &req, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// EditTask edits a task via the edit-task service.
func (a *taskAdapter) EditTask(ctx context.Context, taskID string, edit Edit) (*domain.Task, error) {
	req := EditTaskRequest{
		TaskID:   taskID,
		Title:    edit.Title,
		Category: edit.Category,
		DueDate:  edit.DueDate,
	}
	var resp TaskResponse
	if err := a.call(ctx, ServiceEditTask, &req, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID string) error {
	req := DeleteTaskRequest{TaskID: taskID}
	var resp DeleteTaskResponse
	if err := a.call(ctx, ServiceDeleteTask, &req, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %s", taskID)
	}
	return nil
}

func (a *taskAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return remoteError(service, err)
	}
	return nil
}

// remoteError restores domain.ErrTaskNotFound, which loses its identity when
// it crosses the request-reply boundary as text.
func remoteError(service string, err error) error {
	if strings.Contains(err.Error(), domain.ErrTaskNotFound.Error()) {
		return fmt.Errorf("%s service call failed: %w: %v", service, domain.ErrTaskNotFound, err)
	}
	return fmt.Errorf("%s service call failed: %w", service, err)
}
