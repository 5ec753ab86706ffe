package contract

import (
	"context"

	"re-ad-be/internal/entity"
	"re-ad-be/internal/repository/specification"
)

type WorkspaceRepository interface {
	// Save writes the workspace row and replaces all of its child rows.
	Save(ctx context.Context, workspace *entity.Workspace) error
	Delete(ctx context.Context, specs ...specification.Specification) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workspace, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workspace, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
