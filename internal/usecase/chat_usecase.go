package usecase

import (
	"context"
	"encoding/json"

	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/repository"
	"civicserve/internal/infrastructure/ratelimit"
	"civicserve/internal/infrastructure/realtime"
	"civicserve/pkg/errors"
	"civicserve/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	hub         *realtime.Hub
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(chatRepo repository.ChatRepository, hub *realtime.Hub) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		hub:         hub,
		rateLimiter: rateLimiter,
	}
}

type OpenConversationInput struct {
	UserID       string
	VisitorName  string
	VisitorEmail string
}

// OpenConversation returns the visitor's active conversation, creating
// one only when none exists. Repeated opens are idempotent, so a
// visitor never fragments across app sessions.
func (uc *ChatUseCase) OpenConversation(ctx context.Context, visitorID string, input OpenConversationInput) (*entity.Conversation, error) {
	if visitorID == "" {
		return nil, errors.Validation("visitor id is required", nil)
	}

	existing, err := uc.chatRepo.GetActiveByVisitorID(ctx, visitorID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	allowed, _ := uc.rateLimiter.Allow(visitorID, "open_conversation")
	if !allowed {
		return nil, errors.TooManyRequests("Too many conversations opened, please wait")
	}

	conversation := &entity.Conversation{
		VisitorID:    visitorID,
		UserID:       input.UserID,
		VisitorName:  input.VisitorName,
		VisitorEmail: input.VisitorEmail,
		Status:       entity.ConversationActive,
	}

	if err := uc.chatRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, err
	}

	logger.Info("Conversation opened: id=%s visitor=%s", conversation.ID, visitorID)
	return conversation, nil
}

type PostMessageInput struct {
	ConversationID string
	SenderID       string
	SenderType     entity.SenderType
	Text           string
}

func (uc *ChatUseCase) PostMessage(ctx context.Context, input PostMessageInput) (*entity.ChatMessage, error) {
	if input.Text == "" {
		return nil, errors.Validation("message text is required", nil)
	}
	if input.SenderType != entity.SenderUser && input.SenderType != entity.SenderAdmin {
		return nil, errors.Validation("sender_type must be user or admin", nil)
	}

	conversation, err := uc.chatRepo.GetConversationByID(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}

	if conversation.Status == entity.ConversationClosed {
		return nil, errors.BadRequest("Conversation is closed", nil)
	}

	// A visitor may only write into their own thread.
	if input.SenderType == entity.SenderUser && conversation.VisitorID != input.SenderID {
		return nil, errors.Forbidden("Sender does not own this conversation", nil)
	}

	allowed, _ := uc.rateLimiter.Allow(input.SenderID, "post_message")
	if !allowed {
		return nil, errors.TooManyRequests("Too many messages, please slow down")
	}

	message := &entity.ChatMessage{
		ConversationID: input.ConversationID,
		SenderID:       input.SenderID,
		SenderType:     input.SenderType,
		Message:        input.Text,
		IsRead:         false,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.chatRepo.UpdateConversation(ctx, conversation); err != nil {
		// The message is stored; a stale updatedAt only delays list ordering.
		logger.Warn("Failed to bump conversation %s after message: %v", conversation.ID, err)
	}

	uc.notify(message)

	return message, nil
}

// notify pushes the stored message to live subscribers. Polling remains
// the contract; failures here are invisible to the sender.
func (uc *ChatUseCase) notify(message *entity.ChatMessage) {
	if uc.hub == nil {
		return
	}
	payload, err := json.Marshal(message)
	if err != nil {
		logger.Warn("Failed to encode message %s for push: %v", message.ID, err)
		return
	}
	uc.hub.Broadcast(message.ConversationID, payload)
}

// ListMessages returns a conversation's history ordered oldest first.
// A zero limit returns the full history.
func (uc *ChatUseCase) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.ChatMessage, int64, error) {
	if _, err := uc.chatRepo.GetConversationByID(ctx, conversationID); err != nil {
		return nil, 0, err
	}

	return uc.chatRepo.ListMessages(ctx, conversationID, limit, offset)
}

// ListMessagesFor returns the history visible to a visitor. A
// conversation owned by someone else reads as missing.
func (uc *ChatUseCase) ListMessagesFor(ctx context.Context, conversationID, visitorID string, limit, offset int) ([]*entity.ChatMessage, int64, error) {
	conversation, err := uc.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if conversation.VisitorID != visitorID {
		return nil, 0, errors.NotFound("Conversation", nil)
	}

	return uc.chatRepo.ListMessages(ctx, conversationID, limit, offset)
}

// MarkRead flips isRead on all messages authored by the party opposite
// the viewer. Only operator views track unread state in the product,
// but the flip is symmetric by construction.
func (uc *ChatUseCase) MarkRead(ctx context.Context, conversationID string, viewer entity.SenderType) error {
	if viewer != entity.SenderUser && viewer != entity.SenderAdmin {
		return errors.Validation("viewer must be user or admin", nil)
	}

	if _, err := uc.chatRepo.GetConversationByID(ctx, conversationID); err != nil {
		return err
	}

	other := entity.SenderUser
	if viewer == entity.SenderUser {
		other = entity.SenderAdmin
	}

	return uc.chatRepo.MarkMessagesRead(ctx, conversationID, other)
}

// CloseConversation is terminal; a later open for the same visitor
// starts a fresh conversation.
func (uc *ChatUseCase) CloseConversation(ctx context.Context, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if conversation.Status == entity.ConversationClosed {
		return conversation, nil
	}

	conversation.Status = entity.ConversationClosed
	if err := uc.chatRepo.UpdateConversation(ctx, conversation); err != nil {
		return nil, err
	}

	logger.Info("Conversation closed: id=%s", conversation.ID)
	return conversation, nil
}

// ListConversations builds the operator list view: each conversation
// with its last message and an unread count recomputed from the store
// on every call, never cached.
func (uc *ChatUseCase) ListConversations(ctx context.Context, limit, offset int) ([]*entity.ConversationView, int64, error) {
	conversations, total, err := uc.chatRepo.ListConversations(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*entity.ConversationView, 0, len(conversations))
	for _, conversation := range conversations {
		view := &entity.ConversationView{Conversation: conversation}

		last, err := uc.chatRepo.LastMessage(ctx, conversation.ID)
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			return nil, 0, err
		}
		view.LastMessage = last

		unread, err := uc.chatRepo.CountUnread(ctx, conversation.ID, entity.SenderUser)
		if err != nil {
			return nil, 0, err
		}
		view.UnreadCount = unread

		views = append(views, view)
	}

	return views, total, nil
}
