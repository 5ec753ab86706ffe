package service

import (
	"context"

	"re-ad-be/internal/pkg/logger"
	"re-ad-be/internal/repository/memory"
	"re-ad-be/pkg/events"

	"github.com/google/uuid"
)

// Message types pushed to live connections.
const (
	MessageSnapshot = "snapshot"
	MessageEvent    = "event"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type LivePusher interface {
	Send(userID uuid.UUID, msgType string, data interface{})
}

// Notifier fans a finished mutation out to metrics, the event bus and the
// user's live connections. Either sink may be nil.
type Notifier struct {
	publisher EventPublisher
	pusher    LivePusher
	logger    logger.ILogger
}

func NewNotifier(publisher EventPublisher, pusher LivePusher, log logger.ILogger) *Notifier {
	return &Notifier{publisher: publisher, pusher: pusher, logger: log}
}

func (n *Notifier) emit(ctx context.Context, session *memory.Session, operation, eventType string, data map[string]interface{}) {
	storeOperationsTotal.WithLabelValues(operation, "ok").Inc()

	if data == nil {
		data = map[string]interface{}{}
	}
	data["user_id"] = session.UserID.String()
	evt := events.New(eventType, data)

	if n.publisher != nil {
		if err := n.publisher.Publish(ctx, evt); err != nil {
			n.logger.Warn("Notifier", "Failed to publish event", map[string]interface{}{
				"event": eventType,
				"error": err.Error(),
			})
		}
	}

	if n.pusher != nil {
		n.pusher.Send(session.UserID, MessageEvent, map[string]interface{}{"type": eventType, "data": data})
		n.pusher.Send(session.UserID, MessageSnapshot, session.Store.Snapshot())
	}
}

func (n *Notifier) failed(operation string, err error) error {
	storeOperationsTotal.WithLabelValues(operation, "error").Inc()
	n.logger.Debug("Notifier", "Store operation rejected", map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	})
	return err
}
