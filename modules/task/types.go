package task

import (
	"context"
	"time"

	domain "github.com/example/todo-app/domain/task"
)

// Service names registered by the task module.
const (
	ServiceCreateTask = "create-task"
	ServiceGetTask    = "get-task"
	ServiceListTasks  = "list-tasks"
	ServiceToggleTask = "toggle-task"
	ServiceEditTask   = "edit-task"
	ServiceDeleteTask = "delete-task"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// CreateTaskResponse is the response for creating a task.
// Created is false when the title was empty after trimming.
type CreateTaskResponse struct {
	Created bool          `json:"created"`
	Task    *TaskResponse `json:"task,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

// ListTasksRequest is the request for listing all tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// ToggleTaskRequest is the request for flipping a task's completion flag.
type ToggleTaskRequest struct {
	TaskID string `json:"task_id"`
}

// EditTaskRequest is the request for editing a task. A nil DueDate clears it.
type EditTaskRequest struct {
	TaskID   string     `json:"task_id"`
	Title    string     `json:"title"`
	Category string     `json:"category"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskPort defines the task operations used by driving adapters and the list view.
type TaskPort interface {
	CreateTask(ctx context.Context, title, category string) (*domain.Task, bool, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	ToggleTask(ctx context.Context, taskID string) (*domain.Task, error)
	EditTask(ctx context.Context, taskID string, edit Edit) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		IsCompleted: t.IsCompleted,
		DueDate:     t.DueDate,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
	}
}

func (r *TaskResponse) toDomain() *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		IsCompleted: r.IsCompleted,
		DueDate:     r.DueDate,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
	}
}
