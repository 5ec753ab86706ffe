package nats

import (
	"encoding/json"
	"testing"
	"time"

	"re-ad-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "annotations.HIGHLIGHT_ADDED", Subject(events.HighlightAdded))
}

func TestDecode_RoundTripsEnvelope(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(envelope{
		Type:       events.ReadCreated,
		OccurredAt: at,
		Data:       map[string]interface{}{"read_id": "0"},
	})
	require.NoError(t, err)

	got, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, events.ReadCreated, got.EventType())
	assert.True(t, at.Equal(got.Timestamp()))
	assert.Equal(t, "0", got.Payload()["read_id"])
}

func TestDecode_NilDataBecomesEmptyMap(t *testing.T) {
	got, err := decode([]byte(`{"type":"HIGHLIGHTS_RESET","occurred_at":"2026-03-01T12:00:00Z"}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Payload())
	assert.Empty(t, got.Payload())
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := decode([]byte("not json"))
	assert.Error(t, err)
}
