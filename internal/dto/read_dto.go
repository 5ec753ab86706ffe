package dto

import "re-ad-be/pkg/annotation"

type CreateReadRequest struct {
	Title string `json:"title" validate:"required"`
	Color string `json:"color"`
}

type SetCurrentReadRequest struct {
	ReadId string `json:"read_id" validate:"required"`
}

type ReadsResponse struct {
	Reads          []annotation.ReadRecord `json:"reads"`
	CurrentReadId  string                  `json:"current_read_id"`
	DisplayedReads []string                `json:"displayed_reads"`
}
