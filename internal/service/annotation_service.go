package service

import (
	"context"
	"fmt"

	"re-ad-be/internal/dto"
	"re-ad-be/internal/repository/memory"
	"re-ad-be/pkg/annotation"
	"re-ad-be/pkg/events"

	"github.com/google/uuid"
)

type IAnnotationService interface {
	CreateRead(ctx context.Context, userId uuid.UUID, req *dto.CreateReadRequest) (*annotation.ReadRecord, error)
	ListReads(ctx context.Context, userId uuid.UUID) (*dto.ReadsResponse, error)
	SetCurrentRead(ctx context.Context, userId uuid.UUID, readId string) (*dto.ReadsResponse, error)
	ShowRead(ctx context.Context, userId uuid.UUID, readId string) (*dto.ReadsResponse, error)
	HideRead(ctx context.Context, userId uuid.UUID, readId string) (*dto.ReadsResponse, error)

	AddHighlight(ctx context.Context, userId uuid.UUID, req *dto.AddHighlightRequest) (*annotation.Highlight, error)
	ListHighlights(ctx context.Context, userId uuid.UUID) ([]annotation.Highlight, error)
	UpdateHighlight(ctx context.Context, userId uuid.UUID, id string, req *dto.UpdateHighlightRequest) (*annotation.Highlight, error)
	DeleteHighlight(ctx context.Context, userId uuid.UUID, id string) (*dto.DeleteHighlightResponse, error)
	ResetHighlights(ctx context.Context, userId uuid.UUID) error

	Graph(ctx context.Context, userId uuid.UUID) (*dto.GraphResponse, error)
	Connect(ctx context.Context, userId uuid.UUID, req *dto.ConnectRequest) (*annotation.GraphEdge, error)
	UpdateNode(ctx context.Context, userId uuid.UUID, id string, req *dto.UpdateNodeRequest) (*annotation.GraphNode, error)
	MoveNode(ctx context.Context, userId uuid.UUID, id string, req *dto.MoveNodeRequest) (*annotation.GraphNode, error)
	Select(ctx context.Context, userId uuid.UUID, req *dto.SelectionRequest) (*dto.GraphResponse, error)
}

type annotationService struct {
	registry *memory.WorkspaceRegistry
	notifier *Notifier
}

func NewAnnotationService(registry *memory.WorkspaceRegistry, n *Notifier) IAnnotationService {
	return &annotationService{
		registry: registry,
		notifier: n,
	}
}

func readsResponse(store *annotation.Store) *dto.ReadsResponse {
	return &dto.ReadsResponse{
		Reads:          store.Reads(),
		CurrentReadId:  store.CurrentReadID(),
		DisplayedReads: store.DisplayedReads(),
	}
}

func graphResponse(store *annotation.Store) *dto.GraphResponse {
	return &dto.GraphResponse{
		Nodes:               store.Nodes(),
		Edges:               store.Edges(),
		SelectedHighlightId: store.SelectedHighlightID(),
	}
}

func (s *annotationService) CreateRead(ctx context.Context, userId uuid.UUID, req *dto.CreateReadRequest) (*annotation.ReadRecord, error) {
	session := s.registry.Get(userId)

	read, err := session.Store.CreateRead(req.Title, req.Color)
	if err != nil {
		return nil, s.notifier.failed("create_read", err)
	}

	s.notifier.emit(ctx, session, "create_read", events.ReadCreated, map[string]interface{}{
		"read_id": read.ID,
		"title":   read.Title,
		"color":   read.Color,
	})
	return &read, nil
}

func (s *annotationService) ListReads(ctx context.Context, userId uuid.UUID) (*dto.ReadsResponse, error) {
	return readsResponse(s.registry.Get(userId).Store), nil
}

func (s *annotationService) SetCurrentRead(ctx context.Context, userId uuid.UUID, readId string) (*dto.ReadsResponse, error) {
	session := s.registry.Get(userId)

	if err := session.Store.SetCurrentRead(readId); err != nil {
		return nil, s.notifier.failed("set_current_read", err)
	}

	s.notifier.emit(ctx, session, "set_current_read", events.CurrentReadChanged, map[string]interface{}{
		"read_id":  readId,
		"next_seq": session.Store.NextSeq(readId),
	})
	return readsResponse(session.Store), nil
}

func (s *annotationService) ShowRead(ctx context.Context, userId uuid.UUID, readId string) (*dto.ReadsResponse, error) {
	session := s.registry.Get(userId)

	if err := session.Store.ShowRead(readId); err != nil {
		return nil, s.notifier.failed("show_read", err)
	}

	s.notifier.emit(ctx, session, "show_read", events.ReadShown, map[string]interface{}{"read_id": readId})
	return readsResponse(session.Store), nil
}

func (s *annotationService) HideRead(ctx context.Context, userId uuid.UUID, readId string) (*dto.ReadsResponse, error) {
	session := s.registry.Get(userId)

	session.Store.HideRead(readId)

	s.notifier.emit(ctx, session, "hide_read", events.ReadHidden, map[string]interface{}{"read_id": readId})
	return readsResponse(session.Store), nil
}

func (s *annotationService) AddHighlight(ctx context.Context, userId uuid.UUID, req *dto.AddHighlightRequest) (*annotation.Highlight, error) {
	session := s.registry.Get(userId)

	h, err := session.Store.AddHighlight(annotation.GhostHighlight{
		Type:     annotation.HighlightType(req.Type),
		Position: req.Position,
		Content:  req.Content,
	})
	if err != nil {
		return nil, s.notifier.failed("add_highlight", err)
	}

	s.notifier.emit(ctx, session, "add_highlight", events.HighlightAdded, map[string]interface{}{
		"highlight_id": h.ID,
		"read_id":      h.ReadRecordID,
		"type":         string(h.Type),
		"label":        h.Label,
	})
	return &h, nil
}

func (s *annotationService) ListHighlights(ctx context.Context, userId uuid.UUID) ([]annotation.Highlight, error) {
	return s.registry.Get(userId).Store.Highlights(), nil
}

func (s *annotationService) UpdateHighlight(ctx context.Context, userId uuid.UUID, id string, req *dto.UpdateHighlightRequest) (*annotation.Highlight, error) {
	session := s.registry.Get(userId)

	if !session.Store.UpdateHighlight(id, req.Position, req.Content) {
		return nil, s.notifier.failed("update_highlight", fmt.Errorf("%w: %s", annotation.ErrHighlightNotFound, id))
	}
	h, _ := session.Store.Highlight(id)

	s.notifier.emit(ctx, session, "update_highlight", events.HighlightUpdated, map[string]interface{}{"highlight_id": id})
	return &h, nil
}

func (s *annotationService) DeleteHighlight(ctx context.Context, userId uuid.UUID, id string) (*dto.DeleteHighlightResponse, error) {
	session := s.registry.Get(userId)

	if !session.Store.DeleteHighlight(id) {
		storeOperationsTotal.WithLabelValues("delete_highlight", "noop").Inc()
		return &dto.DeleteHighlightResponse{Id: id, Deleted: false}, nil
	}

	s.notifier.emit(ctx, session, "delete_highlight", events.HighlightDeleted, map[string]interface{}{"highlight_id": id})
	return &dto.DeleteHighlightResponse{Id: id, Deleted: true}, nil
}

func (s *annotationService) ResetHighlights(ctx context.Context, userId uuid.UUID) error {
	session := s.registry.Get(userId)

	session.Store.ResetHighlights()

	s.notifier.emit(ctx, session, "reset_highlights", events.HighlightsReset, nil)
	return nil
}

func (s *annotationService) Graph(ctx context.Context, userId uuid.UUID) (*dto.GraphResponse, error) {
	return graphResponse(s.registry.Get(userId).Store), nil
}

func (s *annotationService) Connect(ctx context.Context, userId uuid.UUID, req *dto.ConnectRequest) (*annotation.GraphEdge, error) {
	session := s.registry.Get(userId)

	edge, err := session.Store.OnConnect(annotation.Connection{
		Source:       req.Source,
		Target:       req.Target,
		SourceHandle: req.SourceHandle,
		TargetHandle: req.TargetHandle,
	})
	if err != nil {
		return nil, s.notifier.failed("connect", err)
	}

	s.notifier.emit(ctx, session, "connect", events.NodesConnected, map[string]interface{}{
		"edge_id": edge.ID,
		"source":  edge.Source,
		"target":  edge.Target,
	})
	return &edge, nil
}

func (s *annotationService) UpdateNode(ctx context.Context, userId uuid.UUID, id string, req *dto.UpdateNodeRequest) (*annotation.GraphNode, error) {
	session := s.registry.Get(userId)

	patch := annotation.NodeDataPatch{Label: req.Label, Notes: req.Notes, Summary: req.Summary}
	if !session.Store.UpdateNodeData(id, patch) {
		return nil, s.notifier.failed("update_node", fmt.Errorf("%w: %s", annotation.ErrNodeNotFound, id))
	}
	node, _ := session.Store.Node(id)

	s.notifier.emit(ctx, session, "update_node", events.NodeUpdated, map[string]interface{}{"node_id": id})
	return &node, nil
}

func (s *annotationService) MoveNode(ctx context.Context, userId uuid.UUID, id string, req *dto.MoveNodeRequest) (*annotation.GraphNode, error) {
	session := s.registry.Get(userId)

	pos := annotation.Position{X: *req.X, Y: *req.Y}
	if !session.Store.MoveNode(id, pos) {
		return nil, s.notifier.failed("move_node", fmt.Errorf("%w: %s", annotation.ErrNodeNotFound, id))
	}
	node, _ := session.Store.Node(id)

	s.notifier.emit(ctx, session, "move_node", events.NodeMoved, map[string]interface{}{
		"node_id": id,
		"x":       pos.X,
		"y":       pos.Y,
	})
	return &node, nil
}

func (s *annotationService) Select(ctx context.Context, userId uuid.UUID, req *dto.SelectionRequest) (*dto.GraphResponse, error) {
	session := s.registry.Get(userId)

	if req.HighlightId == "" {
		session.Store.ClearSelection()
	} else if err := session.Store.SelectHighlight(req.HighlightId); err != nil {
		return nil, s.notifier.failed("select", err)
	}

	s.notifier.emit(ctx, session, "select", events.HighlightSelected, map[string]interface{}{
		"highlight_id": req.HighlightId,
	})
	return graphResponse(session.Store), nil
}
