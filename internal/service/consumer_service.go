package service

import (
	"context"
	"encoding/json"
	"time"

	"re-ad-be/internal/dto"
	"re-ad-be/internal/pkg/logger"
	"re-ad-be/internal/repository/memory"
	"re-ad-be/pkg/events"
	"re-ad-be/pkg/summarizer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IConsumerService runs the background side of the summary queue.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	registry   *memory.WorkspaceRegistry
	summarizer summarizer.Summarizer
	notifier   *Notifier
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	registry *memory.WorkspaceRegistry,
	sum summarizer.Summarizer,
	n *Notifier,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		registry:   registry,
		summarizer: sum,
		notifier:   n,
		logger:     log,
	}
}

// Consume blocks until ctx is cancelled and the subscription drains.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	cs.logger.Info("SummaryConsumer", "Listening for summary jobs", map[string]interface{}{"topic": cs.topicName})
	for msg := range messages {
		cs.processMessage(ctx, msg)
	}
	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// summaries fail soft, so every message is acked
	defer msg.Ack()

	var job dto.SummaryJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.logger.Error("SummaryConsumer", "Failed to unmarshal job", map[string]interface{}{"error": err.Error()})
		summaryJobsTotal.WithLabelValues("process", "invalid").Inc()
		return
	}

	userId, err := uuid.Parse(job.UserId)
	if err != nil {
		summaryJobsTotal.WithLabelValues("process", "invalid").Inc()
		return
	}

	start := time.Now()
	text := cs.summarizer.Summarize(ctx, summarizer.Kind(job.Kind), job.Payload)
	summaryDuration.Observe(time.Since(start).Seconds())

	session, ok := cs.registry.Find(userId)
	if !ok || !session.Store.SetSummary(job.HighlightId, job.Generation, text) {
		cs.logger.Info("SummaryConsumer", "Dropped stale summary", map[string]interface{}{
			"user_id":      job.UserId,
			"highlight_id": job.HighlightId,
		})
		summaryJobsTotal.WithLabelValues("process", "stale").Inc()
		return
	}

	summaryJobsTotal.WithLabelValues("process", "ok").Inc()
	cs.notifier.emit(ctx, session, "set_summary", events.SummaryReady, map[string]interface{}{
		"highlight_id": job.HighlightId,
		"summary":      text,
	})
}
