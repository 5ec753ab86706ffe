package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceOwnedByUser struct {
	UserID uuid.UUID
}

func (s WorkspaceOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspaces.user_id = ?", s.UserID)
}

// WithGraph loads every child collection in its stored order.
type WithGraph struct{}

func (s WithGraph) Apply(db *gorm.DB) *gorm.DB {
	ordered := func(tx *gorm.DB) *gorm.DB { return tx.Order("ordinal ASC") }
	return db.
		Preload("Reads", ordered).
		Preload("Highlights", ordered).
		Preload("Nodes", ordered).
		Preload("Edges", ordered)
}

// IncludeDeleted also matches soft deleted workspaces.
type IncludeDeleted struct{}

func (s IncludeDeleted) Apply(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
