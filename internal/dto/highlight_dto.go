package dto

import "re-ad-be/pkg/annotation"

type AddHighlightRequest struct {
	Type     string                    `json:"type" validate:"required,oneof=text area"`
	Position annotation.ScaledPosition `json:"position"`
	Content  annotation.Content        `json:"content"`
}

type UpdateHighlightRequest struct {
	Position annotation.PositionPatch `json:"position"`
	Content  annotation.ContentPatch  `json:"content"`
}

type DeleteHighlightResponse struct {
	Id      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type RequestSummaryResponse struct {
	HighlightId string `json:"highlight_id"`
	Status      string `json:"status"`
}

// SummaryJob is the message queued for the summary consumer.
type SummaryJob struct {
	UserId      string `json:"user_id"`
	HighlightId string `json:"highlight_id"`
	Kind        string `json:"kind"`
	Payload     string `json:"payload"`
	Generation  uint64 `json:"generation"`
}
