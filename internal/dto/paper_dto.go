package dto

import "time"

type PaperResponse struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	DataUri    string    `json:"data_uri,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}
