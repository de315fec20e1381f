package usecase

import (
	"context"

	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/repository"
)

// AdminUseCase is a thin coordination layer over the request and chat
// use cases for the operator view. It owns no state of its own.
type AdminUseCase struct {
	requestUC  *RequestUseCase
	chatUC     *ChatUseCase
	orphanRepo repository.OrphanedPaymentRepository
}

func NewAdminUseCase(
	requestUC *RequestUseCase,
	chatUC *ChatUseCase,
	orphanRepo repository.OrphanedPaymentRepository,
) *AdminUseCase {
	return &AdminUseCase{
		requestUC:  requestUC,
		chatUC:     chatUC,
		orphanRepo: orphanRepo,
	}
}

func (uc *AdminUseCase) ListRequests(ctx context.Context, statusFilter entity.RequestStatus, limit, offset int) ([]*entity.AdminRequestView, int64, error) {
	return uc.requestUC.ListForAdmin(ctx, statusFilter, limit, offset)
}

func (uc *AdminUseCase) SetStatus(ctx context.Context, requestID string, status entity.RequestStatus) (*entity.ServiceRequest, error) {
	return uc.requestUC.SetStatus(ctx, requestID, status)
}

func (uc *AdminUseCase) AttachResponse(ctx context.Context, requestID, text string, status entity.RequestStatus) (*entity.ServiceRequest, error) {
	return uc.requestUC.AttachResponse(ctx, requestID, text, status)
}

func (uc *AdminUseCase) ListConversations(ctx context.Context, limit, offset int) ([]*entity.ConversationView, int64, error) {
	return uc.chatUC.ListConversations(ctx, limit, offset)
}

// ListMessages is the operator view of a conversation's history, so it
// skips the visitor ownership check.
func (uc *AdminUseCase) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.ChatMessage, int64, error) {
	return uc.chatUC.ListMessages(ctx, conversationID, limit, offset)
}

func (uc *AdminUseCase) MarkConversationRead(ctx context.Context, conversationID string) error {
	return uc.chatUC.MarkRead(ctx, conversationID, entity.SenderAdmin)
}

func (uc *AdminUseCase) CloseConversation(ctx context.Context, conversationID string) (*entity.Conversation, error) {
	return uc.chatUC.CloseConversation(ctx, conversationID)
}

// PostMessage writes an operator reply into a conversation.
func (uc *AdminUseCase) PostMessage(ctx context.Context, conversationID, adminID, text string) (*entity.ChatMessage, error) {
	return uc.chatUC.PostMessage(ctx, PostMessageInput{
		ConversationID: conversationID,
		SenderID:       adminID,
		SenderType:     entity.SenderAdmin,
		Text:           text,
	})
}

// ListOrphanedPayments surfaces charges with no matching request so an
// operator can refund or reconcile them.
func (uc *AdminUseCase) ListOrphanedPayments(ctx context.Context) ([]*entity.OrphanedPayment, error) {
	return uc.orphanRepo.ListUnresolved(ctx)
}

func (uc *AdminUseCase) ResolveOrphanedPayment(ctx context.Context, id string) error {
	return uc.orphanRepo.MarkResolved(ctx, id)
}
