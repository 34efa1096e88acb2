package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func decodeChat(doc *firestore.DocumentSnapshot) (*entity.Chat, error) {
	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, err
	}
	chat.ID = doc.Ref.ID
	return &chat, nil
}

// FindOrCreate runs the lookup and the creation in one transaction so two concurrent
// contacts for the same product cannot both create a chat.
func (r *firestoreChatRepository) FindOrCreate(ctx context.Context, productID, userID string, newChat *entity.Chat) (*entity.Chat, bool, error) {
	var (
		result  *entity.Chat
		created bool
	)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		result, created = nil, false

		query := r.client.Collection(collectionChats).
			Where("participants", "array-contains", userID).
			Where("productId", "==", productID).
			Limit(1)
		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		if len(docs) > 0 {
			result, err = decodeChat(docs[0])
			return err
		}

		ref := r.client.Collection(collectionChats).NewDoc()
		if err := tx.Create(ref, newChat); err != nil {
			return err
		}
		chat := *newChat
		chat.ID = ref.ID
		result, created = &chat, true
		return nil
	})
	if err != nil {
		logger.Error("FindOrCreate Error: product=%s user=%s: %v", productID, userID, err)
		return nil, false, errors.Internal("Failed to locate or create chat", err)
	}

	if created {
		newChat.ID = result.ID
	}
	return result, created, nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection(collectionChats).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	chat, err := decodeChat(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	return chat, nil
}

// ApplyUpdate writes the chat's lastMessage and the list entries in a single transaction.
func (r *firestoreChatRepository) ApplyUpdate(ctx context.Context, update entity.ChatUpdate) error {
	chatRef := r.client.Collection(collectionChats).Doc(update.ChatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		err := tx.Update(chatRef, []firestore.Update{
			{Path: "lastMessage", Value: update.LastMessage},
			{Path: "updatedAt", Value: update.LastMessage.Timestamp},
		})
		if err != nil {
			return err
		}

		for ownerID, entry := range update.Entries {
			ref := userSubcollection(r.client, ownerID, collectionChatList).Doc(update.ChatID)
			if err := tx.Set(ref, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("ApplyUpdate Error: chat=%s: %v", update.ChatID, err)
		if isNotFound(err) {
			return errors.NotFound("Chat", err)
		}
		return errors.Internal("Failed to update chat", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListEntries(ctx context.Context, userID string) ([]entity.ChatListEntry, error) {
	docs, err := userSubcollection(r.client, userID, collectionChatList).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list chats", err)
	}

	entries := make([]entity.ChatListEntry, 0, len(docs))
	for _, doc := range docs {
		var entry entity.ChatListEntry
		if err := doc.DataTo(&entry); err != nil {
			logger.Warn("Skipping unreadable chat list entry %s for %s: %v", doc.Ref.ID, userID, err)
			continue
		}
		if entry.ChatID == "" {
			entry.ChatID = doc.Ref.ID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
