package mapper

import (
	"time"

	"re-ad-be/internal/entity"
	"re-ad-be/internal/model"
	"re-ad-be/pkg/annotation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}

	var deletedAt *time.Time
	if w.DeletedAt.Valid {
		t := w.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	snap := annotation.Snapshot{
		Reads:               make([]annotation.ReadRecord, 0, len(w.Reads)),
		Highlights:          make([]annotation.Highlight, 0, len(w.Highlights)),
		Nodes:               make([]annotation.GraphNode, 0, len(w.Nodes)),
		Edges:               make([]annotation.GraphEdge, 0, len(w.Edges)),
		CurrentReadID:       w.CurrentReadId,
		DisplayedReads:      append([]string{}, w.DisplayedReads...),
		SelectedHighlightID: w.SelectedHighlightId,
	}
	for _, r := range w.Reads {
		snap.Reads = append(snap.Reads, annotation.ReadRecord{ID: r.ReadId, Title: r.Title, Color: r.Color})
	}
	for _, h := range w.Highlights {
		snap.Highlights = append(snap.Highlights, annotation.Highlight{
			ID:           h.HighlightId,
			ReadRecordID: h.ReadRecordId,
			Type:         annotation.HighlightType(h.Type),
			Position:     h.Position.Data(),
			Content:      annotation.Content{Text: h.ContentText, Image: h.ContentImage},
			Label:        h.Label,
			Notes:        h.Notes,
			Summary:      h.Summary,
		})
	}
	for _, n := range w.Nodes {
		snap.Nodes = append(snap.Nodes, annotation.GraphNode{
			ID:       n.NodeId,
			Type:     n.Type,
			Position: annotation.Position{X: n.X, Y: n.Y},
			Data:     n.Data.Data(),
		})
	}
	for _, e := range w.Edges {
		snap.Edges = append(snap.Edges, annotation.GraphEdge{
			ID:           e.EdgeId,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Type:         e.Type,
			MarkerEnd:    e.MarkerEnd,
		})
	}

	var paper *entity.Paper
	if w.PaperData != "" {
		paper = &entity.Paper{Name: w.PaperName, DataURI: w.PaperData, Size: w.PaperSize}
		if w.PaperUploadedAt != nil {
			paper.UploadedAt = *w.PaperUploadedAt
		}
	}

	return &entity.Workspace{
		Id:        w.Id,
		UserId:    w.UserId,
		Snapshot:  snap,
		Paper:     paper,
		CreatedAt: w.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: w.DeletedAt.Valid,
	}
}

// ToModel builds the workspace row and its child rows. Child rows get
// fresh ids and their ordinal is the slice index.
func (m *WorkspaceMapper) ToModel(w *entity.Workspace) *model.Workspace {
	if w == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if w.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *w.DeletedAt, Valid: true}
	} else if w.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	snap := w.Snapshot
	out := &model.Workspace{
		Id:                  w.Id,
		UserId:              w.UserId,
		CurrentReadId:       snap.CurrentReadID,
		SelectedHighlightId: snap.SelectedHighlightID,
		DisplayedReads:      datatypes.JSONSlice[string](append([]string{}, snap.DisplayedReads...)),
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           updatedAt,
		DeletedAt:           deletedAt,
	}
	if w.Paper != nil {
		uploadedAt := w.Paper.UploadedAt
		out.PaperName = w.Paper.Name
		out.PaperData = w.Paper.DataURI
		out.PaperSize = w.Paper.Size
		out.PaperUploadedAt = &uploadedAt
	}

	for i, r := range snap.Reads {
		out.Reads = append(out.Reads, model.ReadRecord{
			Id: uuid.New(), WorkspaceId: w.Id, Ordinal: i,
			ReadId: r.ID, Title: r.Title, Color: r.Color,
		})
	}
	for i, h := range snap.Highlights {
		out.Highlights = append(out.Highlights, model.Highlight{
			Id:           uuid.New(),
			WorkspaceId:  w.Id,
			Ordinal:      i,
			HighlightId:  h.ID,
			ReadRecordId: h.ReadRecordID,
			Type:         string(h.Type),
			Position:     datatypes.NewJSONType(h.Position),
			ContentText:  h.Content.Text,
			ContentImage: h.Content.Image,
			Label:        h.Label,
			Notes:        h.Notes,
			Summary:      h.Summary,
		})
	}
	for i, n := range snap.Nodes {
		out.Nodes = append(out.Nodes, model.GraphNode{
			Id:          uuid.New(),
			WorkspaceId: w.Id,
			Ordinal:     i,
			NodeId:      n.ID,
			Type:        n.Type,
			X:           n.Position.X,
			Y:           n.Position.Y,
			Data:        datatypes.NewJSONType(n.Data),
		})
	}
	for i, e := range snap.Edges {
		out.Edges = append(out.Edges, model.GraphEdge{
			Id:           uuid.New(),
			WorkspaceId:  w.Id,
			Ordinal:      i,
			EdgeId:       e.ID,
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
			Type:         e.Type,
			MarkerEnd:    e.MarkerEnd,
		})
	}

	return out
}

func (m *WorkspaceMapper) ToEntities(workspaces []*model.Workspace) []*entity.Workspace {
	entities := make([]*entity.Workspace, len(workspaces))
	for i, w := range workspaces {
		entities[i] = m.ToEntity(w)
	}
	return entities
}
