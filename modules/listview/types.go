package listview

import (
	"context"

	domain "github.com/example/todo-app/domain/task"
)

// Service names registered by the listview module.
const (
	ServiceProject         = "project"
	ServiceCategories      = "categories"
	ServiceDeletePositions = "delete-positions"
)

// Item is one displayed row: the task plus its overdue state at projection time.
type Item struct {
	domain.Task
	Overdue bool `json:"overdue"`
}

// Projection is the ordered list of rows for a query.
type Projection struct {
	Query      domain.Query `json:"query"`
	Items      []Item       `json:"items"`
	Total      int          `json:"total"`
	Categories []string     `json:"categories"`
}

// ProjectRequest is the request for computing a projection.
type ProjectRequest struct {
	Query domain.Query `json:"query"`
}

// CategoriesRequest is the request for the category picker options.
type CategoriesRequest struct{}

// CategoriesResponse lists the category picker options, "All" first.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// DeletePositionsRequest deletes the rows at Positions of the projection for Query.
type DeletePositionsRequest struct {
	Query     domain.Query `json:"query"`
	Positions []int        `json:"positions"`
}

// DeletePositionsResponse lists the IDs of the deleted tasks.
type DeletePositionsResponse struct {
	Deleted []string `json:"deleted"`
}

// ViewPort defines the list view operations used by driving adapters.
type ViewPort interface {
	Project(ctx context.Context, q domain.Query) (*Projection, error)
	Categories(ctx context.Context) ([]string, error)
	DeletePositions(ctx context.Context, q domain.Query, positions []int) ([]string, error)
}

var _ ViewPort = (*View)(nil)
