package repository

import (
	"context"
	"sort"

	"firebase.google.com/go/v4/db"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
)

// rtdbMessage is the stored layout of a message under messages/{chatId}.
type rtdbMessage struct {
	Text            string               `json:"text"`
	SenderID        string               `json:"senderId"`
	SenderName      string               `json:"senderName"`
	SenderPhotoURL  *string              `json:"senderPhotoURL"`
	Timestamp       int64                `json:"timestamp"`
	IsRequest       bool                 `json:"isRequest,omitempty"`
	IsEscrowRequest bool                 `json:"isEscrowRequest,omitempty"`
	TransactionData *rtdbTransactionData `json:"transactionData,omitempty"`
}

type rtdbTransactionData struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	Price           float64 `json:"price"`
	UseEscrow       bool    `json:"useEscrow"`
	PaymentMethod   string  `json:"paymentMethod"`
	TransactionID   int64   `json:"transactionId"`
	TemplateVersion string  `json:"templateVersion,omitempty"`
}

func toRTDB(m *entity.Message) rtdbMessage {
	rec := rtdbMessage{
		Text:            m.Text,
		SenderID:        m.SenderID,
		SenderName:      m.SenderName,
		Timestamp:       m.Timestamp,
		IsRequest:       m.IsRequest,
		IsEscrowRequest: m.IsEscrowRequest,
	}
	if m.SenderPhotoURL != "" {
		photo := m.SenderPhotoURL
		rec.SenderPhotoURL = &photo
	}
	if td := m.TransactionData; td != nil {
		rec.TransactionData = &rtdbTransactionData{
			ProductID:       td.ProductID,
			ProductName:     td.ProductName,
			Price:           td.Price,
			UseEscrow:       td.UseEscrow,
			PaymentMethod:   td.PaymentMethod,
			TransactionID:   td.TransactionID,
			TemplateVersion: td.TemplateVersion,
		}
	}
	return rec
}

func (rec rtdbMessage) toEntity(id string) entity.Message {
	m := entity.Message{
		ID:              id,
		Text:            rec.Text,
		SenderID:        rec.SenderID,
		SenderName:      rec.SenderName,
		Timestamp:       rec.Timestamp,
		IsRequest:       rec.IsRequest,
		IsEscrowRequest: rec.IsEscrowRequest,
	}
	if rec.SenderPhotoURL != nil {
		m.SenderPhotoURL = *rec.SenderPhotoURL
	}
	if td := rec.TransactionData; td != nil {
		m.TransactionData = &entity.TransactionData{
			ProductID:       td.ProductID,
			ProductName:     td.ProductName,
			Price:           td.Price,
			UseEscrow:       td.UseEscrow,
			PaymentMethod:   td.PaymentMethod,
			TransactionID:   td.TransactionID,
			TemplateVersion: td.TemplateVersion,
		}
	}
	return m
}

type rtdbMessageLog struct {
	client *db.Client
}

func NewRTDBMessageLog(client *db.Client) repository.MessageLog {
	return &rtdbMessageLog{client: client}
}

func (l *rtdbMessageLog) ref(chatID string) *db.Ref {
	return l.client.NewRef(collectionMessages + "/" + chatID)
}

func (l *rtdbMessageLog) IsEmpty(ctx context.Context, chatID string) (bool, error) {
	var keys map[string]interface{}
	if err := l.ref(chatID).GetShallow(ctx, &keys); err != nil {
		return false, errors.Internal("Failed to read chat messages", err)
	}
	return len(keys) == 0, nil
}

func (l *rtdbMessageLog) Append(ctx context.Context, chatID string, message *entity.Message) (string, error) {
	ref, err := l.ref(chatID).Push(ctx, toRTDB(message))
	if err != nil {
		return "", errors.Internal("Failed to send message", err)
	}
	message.ID = ref.Key
	return ref.Key, nil
}

// List returns the chat's messages in timestamp order.
func (l *rtdbMessageLog) List(ctx context.Context, chatID string) ([]entity.Message, error) {
	var raw map[string]rtdbMessage
	if err := l.ref(chatID).Get(ctx, &raw); err != nil {
		return nil, errors.Internal("Failed to read chat messages", err)
	}

	messages := make([]entity.Message, 0, len(raw))
	for key, rec := range raw {
		messages = append(messages, rec.toEntity(key))
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp != messages[j].Timestamp {
			return messages[i].Timestamp < messages[j].Timestamp
		}
		return messages[i].ID < messages[j].ID
	})
	return messages, nil
}
