// Package summarizer turns highlighted content into a short summary. A
// Summarizer never fails: every error path ends in a fixed fallback text
// so callers can write the result back unconditionally.
package summarizer

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

const (
	TextPrompt  = "Summarize this in three sentences or less or if it's a single word/phrase give the definition:"
	ImagePrompt = "Describe this image in detail, focusing on any text, diagrams, or important visual elements:"

	FallbackNoContent     = "No content to summarize."
	FallbackNoSummary     = "No summary available."
	FallbackNoDescription = "No description available."
	FallbackFailed        = "Failed to fetch summary."

	defaultImageMIME = "image/jpeg"
)

type Summarizer interface {
	Summarize(ctx context.Context, kind Kind, payload string) string
}

// Disabled answers every request with the empty-result fallback and never
// leaves the process.
type Disabled struct{}

func (Disabled) Summarize(_ context.Context, kind Kind, payload string) string {
	if strings.TrimSpace(payload) == "" {
		return FallbackNoContent
	}
	return emptyFallback(kind)
}

func emptyFallback(kind Kind) string {
	if kind == KindImage {
		return FallbackNoDescription
	}
	return FallbackNoSummary
}

func promptFor(kind Kind) string {
	if kind == KindImage {
		return ImagePrompt
	}
	return TextPrompt
}

// splitDataURI returns the base64 body of a data URI and its MIME type.
// The type is sniffed from the decoded bytes; the declared type is only a
// fallback because area captures are often mislabeled.
func splitDataURI(uri string) (data string, mimeType string) {
	data = uri
	declared := ""
	if strings.HasPrefix(uri, "data:") {
		if i := strings.IndexByte(uri, ','); i >= 0 {
			header := uri[len("data:"):i]
			data = uri[i+1:]
			declared = strings.SplitN(header, ";", 2)[0]
		}
	}

	if raw, err := base64.StdEncoding.DecodeString(data); err == nil && len(raw) > 0 {
		if m := mimetype.Detect(raw); strings.HasPrefix(m.String(), "image/") {
			return data, m.String()
		}
	}
	if strings.HasPrefix(declared, "image/") {
		return data, declared
	}
	return data, defaultImageMIME
}
