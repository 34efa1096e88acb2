package events

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/pkg/logger"
)

const (
	streamName = "SWAPD_MARKET"

	SubjectChatCreated     = "swapd.chat.created"
	SubjectEscrowRequested = "swapd.escrow.requested"
	SubjectProductDeleted  = "swapd.product.deleted"
)

// Publisher announces marketplace events to other services (escrow agents, search indexers).
type Publisher interface {
	PublishChatCreated(ctx context.Context, chat *entity.Chat) error
	PublishEscrowRequested(ctx context.Context, chatID string, msg *entity.Message) error
	PublishProductDeleted(ctx context.Context, productID, actorID string, favoritesRemoved int) error
	Close() error
}

type Envelope struct {
	Type          string      `json:"type"`
	Version       string      `json:"version"`
	OccurredAt    time.Time   `json:"occurred_at"`
	CorrelationID string      `json:"correlation_id"`
	Payload       interface{} `json:"payload"`
}

type noop struct{}

func (noop) PublishChatCreated(context.Context, *entity.Chat) error                { return nil }
func (noop) PublishEscrowRequested(context.Context, string, *entity.Message) error { return nil }
func (noop) PublishProductDeleted(context.Context, string, string, int) error      { return nil }
func (noop) Close() error                                                          { return nil }

// Noop is the publisher used when no broker is configured.
func Noop() Publisher { return noop{} }

type natsPublisher struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

// NewPublisher connects to NATS JetStream at url. An empty url or any connection
// problem yields the noop publisher.
func NewPublisher(url string) Publisher {
	if url == "" {
		return Noop()
	}

	nc, err := nats.Connect(url, nats.Name("swapdmarket-api"))
	if err != nil {
		logger.Warn("NATS connect failed, events disabled: %v", err)
		return Noop()
	}

	js, err := nc.JetStream()
	if err != nil {
		logger.Warn("NATS JetStream unavailable, events disabled: %v", err)
		nc.Close()
		return Noop()
	}

	if err := ensureStream(js); err != nil {
		logger.Warn("NATS stream setup failed, events disabled: %v", err)
		nc.Close()
		return Noop()
	}

	return &natsPublisher{nc: nc, js: js}
}

func ensureStream(js nats.JetStreamContext) error {
	if _, err := js.StreamInfo(streamName); err == nil {
		return nil
	}
	_, err := js.AddStream(&nats.StreamConfig{
		Name:      streamName,
		Subjects:  []string{"swapd.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Discard:   nats.DiscardOld,
		Storage:   nats.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s stream: %w", streamName, err)
	}
	return nil
}

func (p *natsPublisher) publish(ctx context.Context, subject, msgID string, payload interface{}) error {
	b, err := json.Marshal(Envelope{
		Type:          subject,
		Version:       "1",
		OccurredAt:    time.Now().UTC(),
		CorrelationID: uuid.NewString(),
		Payload:       payload,
	})
	if err != nil {
		return err
	}

	opts := []nats.PubOpt{nats.Context(ctx)}
	if msgID != "" {
		opts = append(opts, nats.MsgId(msgID))
	}
	_, err = p.js.Publish(subject, b, opts...)
	return err
}

func (p *natsPublisher) PublishChatCreated(ctx context.Context, chat *entity.Chat) error {
	return p.publish(ctx, SubjectChatCreated, chat.Fingerprint(), map[string]interface{}{
		"chat_id":      chat.ID,
		"product_id":   chat.ProductID,
		"buyer_id":     chat.BuyerID,
		"seller_id":    chat.SellerID,
		"participants": chat.Participants,
		"created_at":   chat.CreatedAt,
	})
}

func (p *natsPublisher) PublishEscrowRequested(ctx context.Context, chatID string, msg *entity.Message) error {
	payload := map[string]interface{}{
		"chat_id":   chatID,
		"buyer_id":  msg.SenderID,
		"timestamp": msg.Timestamp,
	}
	msgID := ""
	if td := msg.TransactionData; td != nil {
		payload["transaction"] = td
		msgID = fmt.Sprintf("%s-%d", chatID, td.TransactionID)
	}
	return p.publish(ctx, SubjectEscrowRequested, msgID, payload)
}

func (p *natsPublisher) PublishProductDeleted(ctx context.Context, productID, actorID string, favoritesRemoved int) error {
	return p.publish(ctx, SubjectProductDeleted, "", map[string]interface{}{
		"product_id":        productID,
		"deleted_by":        actorID,
		"favorites_removed": favoritesRemoved,
	})
}

func (p *natsPublisher) Close() error {
	if p.nc != nil {
		return p.nc.Drain()
	}
	return nil
}
