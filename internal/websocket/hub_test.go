package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"re-ad-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = hub.Run(ctx) }()
	return hub
}

func TestHub_SendReachesEveryConnectionOfUser(t *testing.T) {
	hub := runHub(t)
	userID := uuid.New()

	a := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4)}
	b := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4)}
	other := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- a
	hub.register <- b
	hub.register <- other

	require.Eventually(t, func() bool { return hub.Connections(userID) == 2 }, time.Second, 5*time.Millisecond)

	hub.Send(userID, "event", map[string]string{"type": "READ_CREATED"})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			var msg Message
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, "event", msg.Type)
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
	assert.Empty(t, other.Send)
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := runHub(t)
	userID := uuid.New()

	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.Connections(userID) == 1 }, time.Second, 5*time.Millisecond)

	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.Connections(userID) == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_FullBufferDropsConnection(t *testing.T) {
	hub := runHub(t)
	userID := uuid.New()

	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.Connections(userID) == 1 }, time.Second, 5*time.Millisecond)

	hub.Send(userID, "event", nil)

	assert.Eventually(t, func() bool { return hub.Connections(userID) == 0 }, time.Second, 5*time.Millisecond)
}
