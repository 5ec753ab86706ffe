package annotation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	long := strings.Repeat("word ", 25)
	exact := strings.TrimSpace(strings.Repeat("w ", 20))

	tests := []struct {
		name string
		in   GhostHighlight
		want string
	}{
		{
			name: "short text is trimmed",
			in:   GhostHighlight{Type: HighlightTypeText, Content: Content{Text: "  attention is all you need \n"}},
			want: "attention is all you need",
		},
		{
			name: "long text keeps twenty words",
			in:   GhostHighlight{Type: HighlightTypeText, Content: Content{Text: long}},
			want: strings.TrimSpace(strings.Repeat("word ", 20)) + "...",
		},
		{
			name: "exactly twenty words is not truncated",
			in:   GhostHighlight{Type: HighlightTypeText, Content: Content{Text: exact}},
			want: exact,
		},
		{
			name: "empty text",
			in:   GhostHighlight{Type: HighlightTypeText},
			want: "",
		},
		{
			name: "area gets a placeholder",
			in:   GhostHighlight{Type: HighlightTypeArea, Content: Content{Image: "data:image/png;base64,AAAA"}},
			want: "Image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.in))
		})
	}
}

func TestAreaHighlightNodeCarriesImage(t *testing.T) {
	s := New()
	_, _ = s.CreateRead("Figures", "#9BF6FF")

	h, err := s.AddHighlight(GhostHighlight{
		Type:    HighlightTypeArea,
		Content: Content{Image: "data:image/png;base64,AAAA"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Image", h.Label)
	assert.Equal(t, "data:image/png;base64,AAAA", h.Content.Image)
	assert.Equal(t, "data:image/png;base64,AAAA", s.Nodes()[0].Data.Content)
}

func TestParseSeq(t *testing.T) {
	tests := []struct {
		id     string
		read   string
		seq    int
		wantOk bool
	}{
		{"0-0", "0", 0, true},
		{"12-34", "12", 34, true},
		{"0-", "", 0, false},
		{"-1", "", 0, false},
		{"0-x", "", 0, false},
		{"nodash", "", 0, false},
	}

	for _, tt := range tests {
		read, seq, ok := parseSeq(tt.id)
		assert.Equal(t, tt.wantOk, ok, tt.id)
		if tt.wantOk {
			assert.Equal(t, tt.read, read, tt.id)
			assert.Equal(t, tt.seq, seq, tt.id)
		}
	}
}
