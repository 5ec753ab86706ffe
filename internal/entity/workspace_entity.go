package entity

import (
	"time"

	"re-ad-be/pkg/annotation"

	"github.com/google/uuid"
)

// Paper is the uploaded PDF kept as a data URI.
type Paper struct {
	Name       string
	DataURI    string
	Size       int64
	UploadedAt time.Time
}

type Workspace struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Snapshot  annotation.Snapshot
	Paper     *Paper
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
