package annotation

import (
	"strconv"
	"strings"
)

const (
	labelWordLimit = 20
	imageLabel     = "Image"
)

// Label derives the short label shown on a node. Text is cut to the first
// twenty words of the trimmed selection.
func Label(h GhostHighlight) string {
	if h.Type == HighlightTypeArea {
		return imageLabel
	}

	text := strings.TrimSpace(h.Content.Text)
	words := strings.Fields(text)
	if len(words) > labelWordLimit {
		return strings.Join(words[:labelWordLimit], " ") + "..."
	}
	return text
}

// nodeContent is what the canvas renders inside the node body: the full
// selected text, or the image data URI for area highlights.
func nodeContent(h GhostHighlight) string {
	if h.Type == HighlightTypeArea {
		return h.Content.Image
	}
	return h.Content.Text
}

func highlightID(readID string, seq int) string {
	return readID + "-" + strconv.Itoa(seq)
}

// parseSeq splits "{readId}-{seq}". Read ids never contain '-', so the
// first separator is the boundary.
func parseSeq(id string) (readID string, seq int, ok bool) {
	i := strings.IndexByte(id, '-')
	if i <= 0 || i == len(id)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return id[:i], n, true
}
