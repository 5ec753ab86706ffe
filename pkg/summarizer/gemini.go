package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.0-flash-lite"
)

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role"`
}

type geminiRequest struct {
	Contents []*geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// GeminiSummarizer calls the generateContent REST endpoint directly.
type GeminiSummarizer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiSummarizer(apiKey, model, baseURL string) *GeminiSummarizer {
	if model == "" {
		model = DefaultGeminiModel
	}
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	return &GeminiSummarizer{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, kind Kind, payload string) string {
	if strings.TrimSpace(payload) == "" {
		return FallbackNoContent
	}

	parts := []*geminiPart{{Text: promptFor(kind)}}
	if kind == KindImage {
		data, mimeType := splitDataURI(payload)
		parts = append(parts, &geminiPart{InlineData: &geminiInlineData{MimeType: mimeType, Data: data}})
	} else {
		parts = append(parts, &geminiPart{Text: payload})
	}

	text, err := g.generate(ctx, parts)
	if err != nil {
		log.Printf("[WARN] Gemini summary failed: %v", err)
		return FallbackFailed
	}
	if strings.TrimSpace(text) == "" {
		return emptyFallback(kind)
	}
	return strings.TrimSpace(text)
}

func (g *GeminiSummarizer) generate(ctx context.Context, parts []*geminiPart) (string, error) {
	payload := geminiRequest{
		Contents: []*geminiContent{{Parts: parts, Role: "user"}},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}
	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range geminiRes.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
