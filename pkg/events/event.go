package events

import "time"

// Event is anything published on the annotation bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

const (
	ReadCreated        = "READ_CREATED"
	CurrentReadChanged = "CURRENT_READ_CHANGED"
	ReadShown          = "READ_SHOWN"
	ReadHidden         = "READ_HIDDEN"
	HighlightAdded     = "HIGHLIGHT_ADDED"
	HighlightUpdated   = "HIGHLIGHT_UPDATED"
	HighlightDeleted   = "HIGHLIGHT_DELETED"
	HighlightsReset    = "HIGHLIGHTS_RESET"
	HighlightSelected  = "HIGHLIGHT_SELECTED"
	NodesConnected     = "NODES_CONNECTED"
	NodeUpdated        = "NODE_UPDATED"
	NodeMoved          = "NODE_MOVED"
	SummaryReady       = "SUMMARY_READY"
	PaperUploaded      = "PAPER_UPLOADED"
	WorkspaceImported  = "WORKSPACE_IMPORTED"
	WorkspaceSaved     = "WORKSPACE_SAVED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
