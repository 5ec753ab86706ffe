package implementation

import (
	"context"
	"errors"

	"re-ad-be/internal/entity"
	"re-ad-be/internal/mapper"
	"re-ad-be/internal/model"
	"re-ad-be/internal/repository/contract"
	"re-ad-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkspaceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkspaceMapper
}

func NewWorkspaceRepository(db *gorm.DB) contract.WorkspaceRepository {
	return &WorkspaceRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkspaceMapper(),
	}
}

var childModels = []interface{}{&model.ReadRecord{}, &model.Highlight{}, &model.GraphNode{}, &model.GraphEdge{}}

func (r *WorkspaceRepositoryImpl) Save(ctx context.Context, workspace *entity.Workspace) error {
	m := r.mapper.ToModel(workspace)
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}

	for _, child := range childModels {
		if err := db.Where("workspace_id = ?", m.Id).Delete(child).Error; err != nil {
			return err
		}
	}

	if len(m.Reads) > 0 {
		if err := db.CreateInBatches(m.Reads, 100).Error; err != nil {
			return err
		}
	}
	if len(m.Highlights) > 0 {
		if err := db.CreateInBatches(m.Highlights, 100).Error; err != nil {
			return err
		}
	}
	if len(m.Nodes) > 0 {
		if err := db.CreateInBatches(m.Nodes, 100).Error; err != nil {
			return err
		}
	}
	if len(m.Edges) > 0 {
		if err := db.CreateInBatches(m.Edges, 100).Error; err != nil {
			return err
		}
	}

	*workspace = *r.mapper.ToEntity(m)
	return nil
}

// Delete soft deletes the workspaces the specs match. Without specs it
// refuses to run.
func (r *WorkspaceRepositoryImpl) Delete(ctx context.Context, specs ...specification.Specification) error {
	if len(specs) == 0 {
		return gorm.ErrMissingWhereClause
	}
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	return query.Delete(&model.Workspace{}).Error
}

func (r *WorkspaceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workspace, error) {
	var m model.Workspace
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WorkspaceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workspace, error) {
	var models []*model.Workspace
	query := specification.ApplyAll(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *WorkspaceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.ApplyAll(r.db.WithContext(ctx).Model(&model.Workspace{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
