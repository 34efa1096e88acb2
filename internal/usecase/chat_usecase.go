package usecase

import (
	"context"
	"sort"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
)

type ChatUseCase struct {
	chatRepo   repository.ChatRepository
	messageLog repository.MessageLog
}

func NewChatUseCase(chatRepo repository.ChatRepository, messageLog repository.MessageLog) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:   chatRepo,
		messageLog: messageLog,
	}
}

// ListChats returns the user's chat list, most recently updated first.
func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) ([]entity.ChatListEntry, error) {
	entries, err := uc.chatRepo.ListEntries(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to load chats", err)
	}
	if entries == nil {
		entries = []entity.ChatListEntry{}
	}
	return entries, nil
}

// UnreadTotal sums the unread counters of the user's chat list.
func (uc *ChatUseCase) UnreadTotal(ctx context.Context, userID string) (int, error) {
	entries, err := uc.ListChats(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.UnreadCount
	}
	return total, nil
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, chatID string) ([]entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	messages, err := uc.messageLog.List(ctx, chatID)
	if err != nil {
		return nil, errors.Internal("Failed to load messages", err)
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
	if messages == nil {
		messages = []entity.Message{}
	}
	return messages, nil
}
