package dto

import "re-ad-be/pkg/annotation"

type GraphResponse struct {
	Nodes               []annotation.GraphNode `json:"nodes"`
	Edges               []annotation.GraphEdge `json:"edges"`
	SelectedHighlightId string                 `json:"selected_highlight_id"`
}

type ConnectRequest struct {
	Source       string `json:"source" validate:"required"`
	Target       string `json:"target" validate:"required"`
	SourceHandle string `json:"source_handle"`
	TargetHandle string `json:"target_handle"`
}

type UpdateNodeRequest struct {
	Label   *string `json:"label"`
	Notes   *string `json:"notes"`
	Summary *string `json:"summary"`
}

type MoveNodeRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// SelectionRequest selects a highlight. An empty id clears the selection.
type SelectionRequest struct {
	HighlightId string `json:"highlight_id"`
}
