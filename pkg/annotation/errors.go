package annotation

import "errors"

var (
	ErrEmptyTitle        = errors.New("read title is required")
	ErrNoCurrentRead     = errors.New("no current read selected")
	ErrReadNotFound      = errors.New("read not found")
	ErrHighlightNotFound = errors.New("highlight not found")
	ErrNodeNotFound      = errors.New("node not found")
	ErrInvalidHighlight  = errors.New("invalid highlight type")
	ErrInvalidSnapshot   = errors.New("invalid snapshot")
)
