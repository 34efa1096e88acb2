package websocket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SendToUserReachesEveryConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	first := NewClient(ctx, "u1", "tab-1", nil)
	second := NewClient(ctx, "u1", "tab-2", nil)
	other := NewClient(ctx, "u2", "tab-3", nil)
	m.Register <- first
	m.Register <- second
	m.Register <- other

	// An unbuffered send only returns once the loop received it, so this orders the registrations.
	m.Unregister <- NewClient(ctx, "nobody", "x", nil)

	assert.Equal(t, 2, m.ConnectionCount("u1"))
	assert.Equal(t, 2, m.SendToUser("u1", []byte("hello")))
	assert.Equal(t, []byte("hello"), <-first.Send)
	assert.Equal(t, []byte("hello"), <-second.Send)
	assert.Len(t, other.Send, 0)
}

func TestManager_UnregisterCancelsClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := NewClient(ctx, "u1", "tab-1", nil)
	m.Register <- client
	m.Unregister <- client
	m.Unregister <- NewClient(ctx, "nobody", "x", nil)

	require.Error(t, client.Context().Err())
	_, open := <-client.Send
	assert.False(t, open)
	assert.Equal(t, 0, m.SendToUser("u1", []byte("late")))
}

func TestEncodeDecodeMessage(t *testing.T) {
	raw, err := EncodeMessage(MessageTypeNotification, map[string]string{"chat_id": "c1"})
	require.NoError(t, err)

	msg, err := DecodeMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, MessageTypeNotification, msg.Type)
	assert.NotEmpty(t, msg.Timestamp)
}

func TestClient_DeliverAfterUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := NewClient(ctx, "u1", "tab-1", nil)
	m.Register <- client
	assert.True(t, client.Deliver([]byte("first")))

	m.Unregister <- client
	m.Unregister <- NewClient(ctx, "nobody", "x", nil)

	assert.False(t, client.Deliver([]byte("late")))
}
