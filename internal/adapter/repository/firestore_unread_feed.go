package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
)

type firestoreUnreadFeed struct {
	client *firestore.Client
}

// NewFirestoreUnreadFeed watches the messages collection for unread messages.
func NewFirestoreUnreadFeed(client *firestore.Client) repository.UnreadMessageFeed {
	return &firestoreUnreadFeed{client: client}
}

func (f *firestoreUnreadFeed) Watch(ctx context.Context, userID string, limit int, onAdded func(entity.UnreadMessage)) error {
	it := f.client.Collection(collectionMessages).
		Where("recipientId", "==", userID).
		Where("read", "==", false).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit).
		Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			return errors.Internal("Failed to watch unread messages", err)
		}

		for _, change := range snap.Changes {
			if change.Kind != firestore.DocumentAdded {
				continue
			}
			data := change.Doc.Data()
			onAdded(entity.UnreadMessage{
				ID:          change.Doc.Ref.ID,
				ChatID:      str(data, "chatId"),
				RecipientID: str(data, "recipientId"),
				SenderName:  str(data, "senderName"),
				Text:        str(data, "text"),
				Timestamp:   millis(data, "timestamp"),
			})
		}
	}
}
