package listview

import (
	"context"

	"github.com/go-monolith/mono"
)

// project handles the project service request.
func (m *Module) project(ctx context.Context, req ProjectRequest, _ *mono.Msg) (Projection, error) {
	projection, err := m.view.Project(ctx, req.Query)
	if err != nil {
		return Projection{}, err
	}
	return *projection, nil
}

// categories handles the categories service request.
func (m *Module) categories(ctx context.Context, _ CategoriesRequest, _ *mono.Msg) (CategoriesResponse, error) {
	categories, err := m.view.Categories(ctx)
	if err != nil {
		return CategoriesResponse{}, err
	}
	return CategoriesResponse{Categories: categories}, nil
}

// deletePositions handles the delete-positions service request.
func (m *Module) deletePositions(ctx context.Context, req DeletePositionsRequest, _ *mono.Msg) (DeletePositionsResponse, error) {
	deleted, err := m.view.DeletePositions(ctx, req.Query, req.Positions)
	if err != nil {
		m.logger.Warn("Delete by position failed", "positions", req.Positions, "deleted", deleted, "error", err)
		return DeletePositionsResponse{Deleted: deleted}, err
	}
	m.logger.Info("Deleted tasks by position", "positions", req.Positions, "ids", deleted)
	return DeletePositionsResponse{Deleted: deleted}, nil
}
