package task

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
)

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (CreateTaskResponse, error) {
	task, created, err := m.service.CreateTask(ctx, req.Title, req.Category)
	if err != nil {
		return CreateTaskResponse{}, err
	}
	if !created {
		return CreateTaskResponse{Created: false}, nil
	}

	resp := toTaskResponse(task)
	return CreateTaskResponse{Created: true, Task: &resp}, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.TaskID == "" {
		return TaskResponse{}, fmt.Errorf("task_id is required")
	}

	task, err := m.service.GetTask(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.ListTasks(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}
	return response, nil
}

// toggleTask handles the toggle-task service request.
func (m *TaskModule) toggleTask(ctx context.Context, req ToggleTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.TaskID == "" {
		return TaskResponse{}, fmt.Errorf("task_id is required")
	}

	task, err := m.service.ToggleTask(ctx, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// editTask handles the edit-task service request.
func (m *TaskModule) editTask(ctx context.Context, req EditTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.TaskID == "" {
		return TaskResponse{}, fmt.Errorf("task_id is required")
	}

	task, err := m.service.EditTask(ctx, req.TaskID, Edit{
		Title:    req.Title,
		Category: req.Category,
		DueDate:  req.DueDate,
	})
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.TaskID == "" {
		return DeleteTaskResponse{Deleted: false}, fmt.Errorf("task_id is required")
	}

	if err := m.service.DeleteTask(ctx, req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.TaskID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.TaskID}, nil
}
