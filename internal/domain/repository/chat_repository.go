package repository

import (
	"context"

	"swapdmarket/internal/domain/entity"
)

type ChatRepository interface {
	// FindOrCreate returns the chat the user already has for the product or, when there is none,
	// stores newChat and returns it with created set. newChat.ID is assigned on creation.
	FindOrCreate(ctx context.Context, productID, userID string, newChat *entity.Chat) (chat *entity.Chat, created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.Chat, error)

	// ApplyUpdate writes the lastMessage pointer and every list entry of the update.
	ApplyUpdate(ctx context.Context, update entity.ChatUpdate) error

	ListEntries(ctx context.Context, userID string) ([]entity.ChatListEntry, error)
}

// MessageLog is the ordered per-chat message log kept in the realtime database.
type MessageLog interface {
	IsEmpty(ctx context.Context, chatID string) (bool, error)
	Append(ctx context.Context, chatID string, message *entity.Message) (string, error)
	List(ctx context.Context, chatID string) ([]entity.Message, error)
}

// UnreadMessageFeed streams unread messages addressed to a user.
type UnreadMessageFeed interface {
	// Watch blocks until ctx is done, calling onAdded for every message newly present
	// in the newest-first window of the given size.
	Watch(ctx context.Context, userID string, limit int, onAdded func(msg entity.UnreadMessage)) error
}
