package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveWorkspaceResponse struct {
	Id         uuid.UUID `json:"id"`
	Reads      int       `json:"reads"`
	Highlights int       `json:"highlights"`
	Edges      int       `json:"edges"`
	SavedAt    time.Time `json:"saved_at"`
}
