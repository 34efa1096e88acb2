package usecase

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/internal/infrastructure/metrics"
	"swapdmarket/internal/infrastructure/websocket"
	"swapdmarket/pkg/logger"
)

const (
	DefaultNotificationLimit     = 10
	DefaultNotificationDismissMs = 4000
	previewRunes                 = 50

	// seenWindowFactor sizes the per-connection dedupe window in multiples of Limit.
	seenWindowFactor = 10
)

type NotificationOptions struct {
	Limit     int
	DismissMs int
}

type NotificationUseCase struct {
	feed    repository.UnreadMessageFeed
	state   repository.ClientStateStore
	metrics metrics.Recorder
	opts    NotificationOptions
	log     zerolog.Logger
}

func NewNotificationUseCase(
	feed repository.UnreadMessageFeed,
	state repository.ClientStateStore,
	recorder metrics.Recorder,
	opts NotificationOptions,
) *NotificationUseCase {
	if opts.Limit <= 0 {
		opts.Limit = DefaultNotificationLimit
	}
	if opts.DismissMs <= 0 {
		opts.DismissMs = DefaultNotificationDismissMs
	}
	return &NotificationUseCase{
		feed:    feed,
		state:   state,
		metrics: recorder,
		opts:    opts,
		log:     logger.With("notifications"),
	}
}

// Subscription is a live unread-message watch bound to one connection.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	seen      map[string]struct{}
	seenOrder []string
	seenCap   int
	recent    []entity.Notification
}

// markSeen records id and reports whether it was new. Only the newest seenCap
// ids are remembered.
func (s *Subscription) markSeen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.seenOrder = append(s.seenOrder, id)
	if len(s.seenOrder) > s.seenCap {
		evict := len(s.seenOrder) - s.seenCap
		for _, old := range s.seenOrder[:evict] {
			delete(s.seen, old)
		}
		s.seenOrder = append([]string(nil), s.seenOrder[evict:]...)
	}
	return true
}

// Close stops the watch and waits for it to return.
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

// Recent returns the notifications delivered so far, oldest first.
func (s *Subscription) Recent() []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Notification(nil), s.recent...)
}

// Subscribe watches the user's unread messages and pushes a notification to sink for
// each one seen for the first time. The watch ends when ctx is done or Close is called.
func (uc *NotificationUseCase) Subscribe(ctx context.Context, userID, clientID string, sink NotificationSink) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		cancel: cancel,
		done:    make(chan struct{}),
		seen:    make(map[string]struct{}),
		seenCap: seenWindowFactor * uc.opts.Limit,
	}

	go func() {
		defer close(sub.done)
		err := uc.feed.Watch(ctx, userID, uc.opts.Limit, func(msg entity.UnreadMessage) {
			uc.deliver(sub, clientID, sink, msg)
		})
		if err != nil && ctx.Err() == nil {
			uc.log.Error().Err(err).Str("user", userID).Msg("unread message watch stopped")
		}
	}()
	return sub
}

func (uc *NotificationUseCase) deliver(sub *Subscription, clientID string, sink NotificationSink, msg entity.UnreadMessage) {
	if reason := malformed(msg); reason != "" {
		uc.log.Warn().Str("message", msg.ID).Str("missing", reason).Msg("dropping malformed message")
		uc.metrics.IncNotificationDropped("malformed")
		return
	}

	if !sub.markSeen(msg.ID) {
		return
	}

	n := BuildNotification(msg, uc.state.Load(clientID).NotificationSoundEnabled, uc.opts.DismissMs)
	payload, err := websocket.EncodeMessage(websocket.MessageTypeNotification, n)
	if err != nil {
		uc.log.Error().Err(err).Msg("encode notification")
		return
	}
	if !sink.Deliver(payload) {
		uc.metrics.IncNotificationDropped("backpressure")
		return
	}

	sub.mu.Lock()
	sub.recent = append(sub.recent, n)
	if len(sub.recent) > uc.opts.Limit {
		sub.recent = sub.recent[len(sub.recent)-uc.opts.Limit:]
	}
	sub.mu.Unlock()
	uc.metrics.IncNotificationDelivered()
}

func malformed(msg entity.UnreadMessage) string {
	switch {
	case msg.SenderName == "":
		return "senderName"
	case msg.Text == "":
		return "text"
	case msg.Timestamp == 0:
		return "timestamp"
	case msg.ChatID == "":
		return "chatId"
	}
	return ""
}

// BuildNotification turns an unread message into an auto-dismissing notification.
func BuildNotification(msg entity.UnreadMessage, sound bool, dismissMs int) entity.Notification {
	n := entity.Notification{
		ID:             uuid.NewString(),
		ChatID:         msg.ChatID,
		SenderName:     msg.SenderName,
		Preview:        Preview(msg.Text),
		Timestamp:      msg.Timestamp,
		DismissAfterMs: dismissMs,
	}
	if sound {
		tone := entity.NotificationTone
		n.Sound = &tone
	}
	return n
}

// Preview keeps the first 50 characters of text, marking the cut with "...".
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	return string([]rune(text)[:previewRunes]) + "..."
}
