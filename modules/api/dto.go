package api

import (
	"time"

	domain "github.com/example/todo-app/domain/task"
	"github.com/example/todo-app/modules/listview"
)

// dateLayout is the wire format of due dates.
const dateLayout = "2006-01-02"

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// CreateTaskResponse is the HTTP response for creating a task. Task is nil
// when the request was declined.
type CreateTaskResponse struct {
	Created bool          `json:"created"`
	Task    *TaskResponse `json:"task,omitempty"`
}

// EditTaskRequest is the HTTP request for editing a task. DueDate is only
// read when HasDueDate is true.
type EditTaskRequest struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	HasDueDate bool   `json:"has_due_date"`
	DueDate    string `json:"due_date"`
}

// DeletePositionsRequest is the HTTP request for deleting displayed rows.
type DeletePositionsRequest struct {
	Category  string `json:"category"`
	Search    string `json:"search"`
	Sort      string `json:"sort"`
	Positions []int  `json:"positions"`
}

// DeletePositionsResponse is the HTTP response for deleting displayed rows.
type DeletePositionsResponse struct {
	Deleted []string `json:"deleted"`
	Count   int      `json:"count"`
}

// TaskResponse is the HTTP response for a single task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"is_completed"`
	DueDate     *string   `json:"due_date"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	Overdue     bool      `json:"overdue"`
}

// ListTasksResponse is the HTTP response for the task list screen.
type ListTasksResponse struct {
	Category   string         `json:"category"`
	Search     string         `json:"search"`
	Sort       string         `json:"sort"`
	Tasks      []TaskResponse `json:"tasks"`
	Total      int            `json:"total"`
	Categories []string       `json:"categories"`
}

// CategoriesResponse is the HTTP response for the category picker.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// SortOptionResponse describes one entry of the sort picker.
type SortOptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newTaskResponse(t *domain.Task, overdue bool) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		IsCompleted: t.IsCompleted,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
		Overdue:     overdue,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}
	return resp
}

func newListTasksResponse(p *listview.Projection) ListTasksResponse {
	tasks := make([]TaskResponse, 0, len(p.Items))
	for i := range p.Items {
		tasks = append(tasks, newTaskResponse(&p.Items[i].Task, p.Items[i].Overdue))
	}
	return ListTasksResponse{
		Category:   p.Query.Category,
		Search:     p.Query.Search,
		Sort:       string(p.Query.Sort),
		Tasks:      tasks,
		Total:      p.Total,
		Categories: p.Categories,
	}
}

// dueDate converts the two-part due date of the edit form into a single
// optional date. The date is read in local time.
func (r EditTaskRequest) dueDate() (*time.Time, error) {
	if !r.HasDueDate {
		return nil, nil
	}
	d, err := time.ParseInLocation(dateLayout, r.DueDate, time.Local)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
