package service

import (
	"context"
	"time"

	"re-ad-be/internal/dto"
	"re-ad-be/internal/entity"
	"re-ad-be/internal/repository/memory"
	"re-ad-be/internal/repository/specification"
	"re-ad-be/internal/repository/unitofwork"
	"re-ad-be/pkg/annotation"
	"re-ad-be/pkg/events"

	"github.com/google/uuid"
)

type IWorkspaceService interface {
	Export(ctx context.Context, userId uuid.UUID) (*annotation.Snapshot, error)
	// Import replaces the live workspace wholesale. Nothing is merged.
	Import(ctx context.Context, userId uuid.UUID, snap *annotation.Snapshot) (*annotation.Snapshot, error)
	Save(ctx context.Context, userId uuid.UUID) (*dto.SaveWorkspaceResponse, error)
	Load(ctx context.Context, userId uuid.UUID) (*annotation.Snapshot, error)
	DeleteSaved(ctx context.Context, userId uuid.UUID) error
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
	registry   *memory.WorkspaceRegistry
	notifier   *Notifier
}

func NewWorkspaceService(uowFactory unitofwork.RepositoryFactory, registry *memory.WorkspaceRegistry, n *Notifier) IWorkspaceService {
	return &workspaceService{
		uowFactory: uowFactory,
		registry:   registry,
		notifier:   n,
	}
}

func (s *workspaceService) Export(ctx context.Context, userId uuid.UUID) (*annotation.Snapshot, error) {
	snap := s.registry.Get(userId).Store.Snapshot()
	return &snap, nil
}

func (s *workspaceService) Import(ctx context.Context, userId uuid.UUID, snap *annotation.Snapshot) (*annotation.Snapshot, error) {
	session := s.registry.Get(userId)

	if err := session.Store.Replace(*snap); err != nil {
		return nil, s.notifier.failed("import_workspace", err)
	}

	s.notifier.emit(ctx, session, "import_workspace", events.WorkspaceImported, map[string]interface{}{
		"source":     "upload",
		"reads":      len(snap.Reads),
		"highlights": len(snap.Highlights),
	})
	out := session.Store.Snapshot()
	return &out, nil
}

func (s *workspaceService) Save(ctx context.Context, userId uuid.UUID) (*dto.SaveWorkspaceResponse, error) {
	session := s.registry.Get(userId)
	snap := session.Store.Snapshot()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.WorkspaceRepository().FindOne(ctx, specification.WorkspaceOwnedByUser{UserID: userId})
	if err != nil {
		workspaceSavesTotal.WithLabelValues("save", "error").Inc()
		return nil, err
	}

	workspace := entity.Workspace{
		Id:        uuid.New(),
		UserId:    userId,
		Snapshot:  snap,
		CreatedAt: time.Now(),
	}
	if existing != nil {
		workspace.Id = existing.Id
		workspace.CreatedAt = existing.CreatedAt
	}
	if paper, ok := session.Paper(); ok {
		workspace.Paper = &paper
	}

	if err := uow.WorkspaceRepository().Save(ctx, &workspace); err != nil {
		workspaceSavesTotal.WithLabelValues("save", "error").Inc()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		workspaceSavesTotal.WithLabelValues("save", "error").Inc()
		return nil, err
	}
	workspaceSavesTotal.WithLabelValues("save", "ok").Inc()

	savedAt := time.Now()
	if workspace.UpdatedAt != nil {
		savedAt = *workspace.UpdatedAt
	}

	s.notifier.emit(ctx, session, "save_workspace", events.WorkspaceSaved, map[string]interface{}{
		"workspace_id": workspace.Id.String(),
	})

	return &dto.SaveWorkspaceResponse{
		Id:         workspace.Id,
		Reads:      len(snap.Reads),
		Highlights: len(snap.Highlights),
		Edges:      len(snap.Edges),
		SavedAt:    savedAt,
	}, nil
}

func (s *workspaceService) Load(ctx context.Context, userId uuid.UUID) (*annotation.Snapshot, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	workspace, err := uow.WorkspaceRepository().FindOne(ctx,
		specification.WorkspaceOwnedByUser{UserID: userId},
		specification.WithGraph{},
	)
	if err != nil {
		workspaceSavesTotal.WithLabelValues("load", "error").Inc()
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotSaved
	}

	session := s.registry.Get(userId)
	if err := session.Store.Replace(workspace.Snapshot); err != nil {
		workspaceSavesTotal.WithLabelValues("load", "error").Inc()
		return nil, s.notifier.failed("load_workspace", err)
	}
	session.SetPaper(workspace.Paper)
	workspaceSavesTotal.WithLabelValues("load", "ok").Inc()

	s.notifier.emit(ctx, session, "load_workspace", events.WorkspaceImported, map[string]interface{}{
		"source":       "database",
		"workspace_id": workspace.Id.String(),
	})
	out := session.Store.Snapshot()
	return &out, nil
}

func (s *workspaceService) DeleteSaved(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.WorkspaceOwnedByUser{UserID: userId})
	if err != nil {
		return err
	}
	if workspace == nil {
		return ErrWorkspaceNotSaved
	}
	return uow.WorkspaceRepository().Delete(ctx, specification.ByID{ID: workspace.Id})
}
