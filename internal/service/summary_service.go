package service

import (
	"context"
	"encoding/json"
	"fmt"

	"re-ad-be/internal/dto"
	"re-ad-be/internal/repository/memory"
	"re-ad-be/pkg/annotation"
	"re-ad-be/pkg/summarizer"

	"github.com/google/uuid"
)

const SummaryStatusQueued = "queued"

type ISummaryService interface {
	// RequestSummary queues a summary for the highlight and returns at once.
	RequestSummary(ctx context.Context, userId uuid.UUID, highlightId string) (*dto.RequestSummaryResponse, error)
}

type summaryService struct {
	registry  *memory.WorkspaceRegistry
	publisher IPublisherService
	notifier  *Notifier
}

func NewSummaryService(registry *memory.WorkspaceRegistry, publisher IPublisherService, n *Notifier) ISummaryService {
	return &summaryService{
		registry:  registry,
		publisher: publisher,
		notifier:  n,
	}
}

func (s *summaryService) RequestSummary(ctx context.Context, userId uuid.UUID, highlightId string) (*dto.RequestSummaryResponse, error) {
	session := s.registry.Get(userId)

	h, gen, ok := session.Store.HighlightGeneration(highlightId)
	if !ok {
		return nil, s.notifier.failed("request_summary", fmt.Errorf("%w: %s", annotation.ErrHighlightNotFound, highlightId))
	}

	job := dto.SummaryJob{
		UserId:      userId.String(),
		HighlightId: h.ID,
		Kind:        string(summarizer.KindText),
		Payload:     h.Content.Text,
		Generation:  gen,
	}
	if h.Type == annotation.HighlightTypeArea {
		job.Kind = string(summarizer.KindImage)
		job.Payload = h.Content.Image
	}

	msgJson, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, msgJson); err != nil {
		summaryJobsTotal.WithLabelValues("queue", "error").Inc()
		return nil, err
	}
	summaryJobsTotal.WithLabelValues("queue", "ok").Inc()

	return &dto.RequestSummaryResponse{HighlightId: h.ID, Status: SummaryStatusQueued}, nil
}
