package model

import (
	"time"

	"re-ad-be/pkg/annotation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Workspace struct {
	Id                  uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserId              uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CurrentReadId       string                      `gorm:"type:varchar(32)"`
	SelectedHighlightId string                      `gorm:"type:varchar(64)"`
	DisplayedReads      datatypes.JSONSlice[string] `gorm:"type:json"`
	PaperName           string                      `gorm:"type:varchar(255)"`
	PaperData           string                      `gorm:"type:text"`
	PaperSize           int64
	PaperUploadedAt     *time.Time
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`

	Reads      []ReadRecord `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
	Highlights []Highlight  `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
	Nodes      []GraphNode  `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
	Edges      []GraphEdge  `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

// Ordinal on the child tables keeps the store's slice order across a
// save and load.

type ReadRecord struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index"`
	Ordinal     int       `gorm:"not null"`
	ReadId      string    `gorm:"type:varchar(32);not null"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Color       string    `gorm:"type:varchar(64)"`
}

func (ReadRecord) TableName() string {
	return "read_records"
}

type Highlight struct {
	Id           uuid.UUID                                     `gorm:"type:uuid;primaryKey"`
	WorkspaceId  uuid.UUID                                     `gorm:"type:uuid;not null;index"`
	Ordinal      int                                           `gorm:"not null"`
	HighlightId  string                                        `gorm:"type:varchar(64);not null"`
	ReadRecordId string                                        `gorm:"type:varchar(32);not null"`
	Type         string                                        `gorm:"type:varchar(16);not null"`
	Position     datatypes.JSONType[annotation.ScaledPosition] `gorm:"type:json"`
	ContentText  string                                        `gorm:"type:text"`
	ContentImage string                                        `gorm:"type:text"`
	Label        string                                        `gorm:"type:text"`
	Notes        string                                        `gorm:"type:text"`
	Summary      string                                        `gorm:"type:text"`
}

func (Highlight) TableName() string {
	return "highlights"
}

type GraphNode struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index"`
	Ordinal     int       `gorm:"not null"`
	NodeId      string    `gorm:"type:varchar(64);not null"`
	Type        string    `gorm:"type:varchar(32);not null"`
	X           float64
	Y           float64
	Data        datatypes.JSONType[annotation.NodeData] `gorm:"type:json"`
}

func (GraphNode) TableName() string {
	return "graph_nodes"
}

type GraphEdge struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkspaceId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Ordinal      int       `gorm:"not null"`
	EdgeId       string    `gorm:"type:varchar(255);not null"`
	Source       string    `gorm:"type:varchar(64);not null"`
	Target       string    `gorm:"type:varchar(64);not null"`
	SourceHandle string    `gorm:"type:varchar(64)"`
	TargetHandle string    `gorm:"type:varchar(64)"`
	Type         string    `gorm:"type:varchar(16);not null"`
	MarkerEnd    string    `gorm:"type:varchar(32)"`
}

func (GraphEdge) TableName() string {
	return "graph_edges"
}
