package listview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/todo-app/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// viewAdapter wraps ServiceContainer for type-safe cross-module communication.
// It implements ViewPort for modules that depend on "listview".
type viewAdapter struct {
	container mono.ServiceContainer
}

// NewViewAdapter creates a new adapter for listview services.
func NewViewAdapter(container mono.ServiceContainer) ViewPort {
	if container == nil {
		panic("listview adapter requires non-nil ServiceContainer")
	}
	return &viewAdapter{container: container}
}

// Project computes a projection via the project service.
func (a *viewAdapter) Project(ctx context.Context, q domain.Query) (*Projection, error) {
	req := ProjectRequest{Query: q}
	var resp Projection
	if err := a.call(ctx, ServiceProject, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Categories lists category picker options via the categories service.
func (a *viewAdapter) Categories(ctx context.Context) ([]string, error) {
	var resp CategoriesResponse
	if err := a.call(ctx, ServiceCategories, &CategoriesRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// DeletePositions deletes displayed rows via the delete-positions service.
func (a *viewAdapter) DeletePositions(ctx context.Context, q domain.Query, positions []int) ([]string, error) {
	req := DeletePositionsRequest{Query: q, Positions: positions}
	var resp DeletePositionsResponse
	if err := a.call(ctx, ServiceDeletePositions, &req, &resp); err != nil {
		return nil, err
	}
	return resp.Deleted, nil
}

func (a *viewAdapter) call(ctx context.Context, service string, req, resp any) error {
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

// remoteErrors are the sentinels restored from error text after a service call.
var remoteErrors = []error{
	ErrPositionOutOfRange,
	domain.ErrInvalidSortOption,
	domain.ErrTaskNotFound,
}

func remoteError(service string, err error) error {
	for _, sentinel := range remoteErrors {
		if strings.Contains(err.Error(), sentinel.Error()) {
			return fmt.Errorf("%s service call failed: %w: %v", service, sentinel, err)
		}
	}
	return fmt.Errorf("%s service call failed: %w", service, err)
}
