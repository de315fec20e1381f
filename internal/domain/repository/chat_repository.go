package repository

import (
	"context"

	"civicserve/internal/domain/entity"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conversation *entity.Conversation) error
	GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error)
	UpdateConversation(ctx context.Context, conversation *entity.Conversation) error

	// GetActiveByVisitorID returns the visitor's single active
	// conversation, or a NOT_FOUND error when none exists.
	GetActiveByVisitorID(ctx context.Context, visitorID string) (*entity.Conversation, error)

	ListConversations(ctx context.Context, limit, offset int) ([]*entity.Conversation, int64, error)

	// Messages are append-only; ordering is createdAt ascending.
	CreateMessage(ctx context.Context, message *entity.ChatMessage) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.ChatMessage, int64, error)
	LastMessage(ctx context.Context, conversationID string) (*entity.ChatMessage, error)

	CountUnread(ctx context.Context, conversationID string, sender entity.SenderType) (int, error)
	MarkMessagesRead(ctx context.Context, conversationID string, sender entity.SenderType) error
}
