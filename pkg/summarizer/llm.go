package summarizer

import (
	"context"
	"log"
	"strings"

	"re-ad-be/pkg/llm"
)

// LLMSummarizer summarizes text through any chat model. It has no vision
// path, so image payloads get the description fallback.
type LLMSummarizer struct {
	provider llm.LLMProvider
}

func NewLLMSummarizer(provider llm.LLMProvider) *LLMSummarizer {
	return &LLMSummarizer{provider: provider}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, kind Kind, payload string) string {
	if strings.TrimSpace(payload) == "" {
		return FallbackNoContent
	}
	if kind == KindImage {
		return FallbackNoDescription
	}

	out, err := s.provider.Generate(ctx, TextPrompt+" "+payload, llm.WithTemperature(0.2))
	if err != nil {
		log.Printf("[WARN] LLM summary failed: %v", err)
		return FallbackFailed
	}
	if strings.TrimSpace(out) == "" {
		return FallbackNoSummary
	}
	return strings.TrimSpace(out)
}
