package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/infrastructure/metrics"
	"swapdmarket/internal/infrastructure/websocket"
	"swapdmarket/internal/testutil"
)

func decodeNotification(t *testing.T, raw []byte) entity.Notification {
	t.Helper()
	var envelope struct {
		Type string              `json:"type"`
		Data entity.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Equal(t, websocket.MessageTypeNotification, envelope.Type)
	return envelope.Data
}

func TestNotifications_DropsMalformedAndDeduplicates(t *testing.T) {
	feed := &testutil.UnreadFeed{Batch: []entity.UnreadMessage{
		{ID: "m1", ChatID: "c1", SenderName: "Ann", Text: "hello", Timestamp: 10},
		{ID: "m2", ChatID: "c1", SenderName: "", Text: "no sender", Timestamp: 11},
		{ID: "m3", ChatID: "", SenderName: "Ann", Text: "no chat", Timestamp: 12},
		{ID: "m4", ChatID: "c2", SenderName: "Bo", Text: "", Timestamp: 13},
		{ID: "m5", ChatID: "c2", SenderName: "Bo", Text: "no time"},
		{ID: "m1", ChatID: "c1", SenderName: "Ann", Text: "hello", Timestamp: 10},
	}}
	uc := NewNotificationUseCase(feed, testutil.NewClientState(), metrics.Noop(), NotificationOptions{})
	sink := &testutil.Sink{}

	sub := uc.Subscribe(context.Background(), "u1", "client-1", sink)
	require.Eventually(t, func() bool { return len(sub.Recent()) == 1 }, time.Second, 5*time.Millisecond)
	sub.Close()

	require.Equal(t, 1, sink.Count())
	n := decodeNotification(t, sink.Payloads[0])
	assert.Equal(t, "c1", n.ChatID)
	assert.Equal(t, "Ann", n.SenderName)
	assert.Equal(t, 4000, n.DismissAfterMs)
	assert.Nil(t, n.Sound)
}

func TestNotifications_SoundFollowsClientPreference(t *testing.T) {
	state := testutil.NewClientState()
	require.NoError(t, state.Put("client-1", entity.StateKeyNotificationSound, true))
	feed := &testutil.UnreadFeed{Batch: []entity.UnreadMessage{
		{ID: "m1", ChatID: "c1", SenderName: "Ann", Text: "hello", Timestamp: 10},
	}}
	uc := NewNotificationUseCase(feed, state, metrics.Noop(), NotificationOptions{})
	sink := &testutil.Sink{}

	sub := uc.Subscribe(context.Background(), "u1", "client-1", sink)
	require.Eventually(t, func() bool { return sink.Count() == 1 }, time.Second, 5*time.Millisecond)
	sub.Close()

	n := decodeNotification(t, sink.Payloads[0])
	require.NotNil(t, n.Sound)
	assert.Equal(t, entity.NotificationTone, *n.Sound)
}

func TestNotifications_DedupeWindowIsBounded(t *testing.T) {
	const limit = 2
	window := seenWindowFactor * limit
	var batch []entity.UnreadMessage
	for i := 0; i < window+5; i++ {
		batch = append(batch, entity.UnreadMessage{
			ID: fmt.Sprintf("m%d", i), ChatID: "c1", SenderName: "Ann", Text: "hi", Timestamp: int64(i + 1),
		})
	}
	uc := NewNotificationUseCase(&testutil.UnreadFeed{Batch: batch}, testutil.NewClientState(), metrics.Noop(), NotificationOptions{Limit: limit})
	sink := &testutil.Sink{}

	sub := uc.Subscribe(context.Background(), "u1", "client-1", sink)
	require.Eventually(t, func() bool { return sink.Count() == window+5 }, time.Second, 5*time.Millisecond)
	sub.Close()

	assert.Len(t, sub.seen, window)
	assert.Len(t, sub.seenOrder, window)
	assert.NotContains(t, sub.seen, "m0")
	assert.Contains(t, sub.seen, fmt.Sprintf("m%d", window+4))
	assert.Len(t, sub.Recent(), limit)

	// Ids still inside the window stay deduplicated.
	assert.False(t, sub.markSeen(fmt.Sprintf("m%d", window+4)))
}

func TestNotifications_CloseEndsWatch(t *testing.T) {
	uc := NewNotificationUseCase(&testutil.UnreadFeed{}, testutil.NewClientState(), metrics.Noop(), NotificationOptions{})

	sub := uc.Subscribe(context.Background(), "u1", "c", &testutil.Sink{})
	done := make(chan struct{})
	go func() {
		sub.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscription did not close")
	}
}

func TestPreview(t *testing.T) {
	short := "hi there"
	assert.Equal(t, short, Preview(short))

	exact := strings.Repeat("a", 50)
	assert.Equal(t, exact, Preview(exact))

	long := strings.Repeat("é", 60)
	got := Preview(long)
	assert.Equal(t, strings.Repeat("é", 50)+"...", got)
}
