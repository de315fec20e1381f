package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicserve/internal/domain/entity"
	"civicserve/pkg/errors"
)

func newChatFixture() (*ChatUseCase, *memChatRepo) {
	chatRepo := newMemChatRepo()
	return NewChatUseCase(chatRepo, nil), chatRepo
}

func TestOpenConversationIdempotent(t *testing.T) {
	uc, _ := newChatFixture()
	ctx := context.Background()

	first, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{VisitorName: "Sam"})
	require.NoError(t, err)

	second, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{VisitorName: "Sam"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	_, err = uc.OpenConversation(ctx, "", OpenConversationInput{})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestOpenAfterCloseStartsFresh(t *testing.T) {
	uc, _ := newChatFixture()
	ctx := context.Background()

	first, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{})
	require.NoError(t, err)

	closed, err := uc.CloseConversation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ConversationClosed, closed.Status)

	// Closing again is a no-op.
	_, err = uc.CloseConversation(ctx, first.ID)
	require.NoError(t, err)

	next, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestPostMessageValidation(t *testing.T) {
	uc, _ := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{})
	require.NoError(t, err)

	_, err = uc.PostMessage(ctx, PostMessageInput{
		ConversationID: conversation.ID,
		SenderID:       "visitor-1",
		SenderType:     entity.SenderUser,
	})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	// A visitor cannot write into someone else's thread.
	_, err = uc.PostMessage(ctx, PostMessageInput{
		ConversationID: conversation.ID,
		SenderID:       "visitor-2",
		SenderType:     entity.SenderUser,
		Text:           "hello",
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.CloseConversation(ctx, conversation.ID)
	require.NoError(t, err)

	_, err = uc.PostMessage(ctx, PostMessageInput{
		ConversationID: conversation.ID,
		SenderID:       "visitor-1",
		SenderType:     entity.SenderUser,
		Text:           "hello",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUnreadCountLifecycle(t *testing.T) {
	uc, _ := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{})
	require.NoError(t, err)

	post := func(sender entity.SenderType, senderID, text string) {
		t.Helper()
		_, err := uc.PostMessage(ctx, PostMessageInput{
			ConversationID: conversation.ID,
			SenderID:       senderID,
			SenderType:     sender,
			Text:           text,
		})
		require.NoError(t, err)
	}

	post(entity.SenderUser, "visitor-1", "my cart is missing")
	post(entity.SenderUser, "visitor-1", "second message")
	post(entity.SenderAdmin, "admin-1", "looking into it")

	views, _, err := uc.ListConversations(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)

	// Admin replies never count toward the operator's unread number.
	assert.Equal(t, 2, views[0].UnreadCount)
	assert.Equal(t, "looking into it", views[0].LastMessage.Message)

	require.NoError(t, uc.MarkRead(ctx, conversation.ID, entity.SenderAdmin))

	views, _, err = uc.ListConversations(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, views[0].UnreadCount)

	post(entity.SenderUser, "visitor-1", "any update?")

	views, _, err = uc.ListConversations(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, views[0].UnreadCount)
}

func TestListMessagesAscending(t *testing.T) {
	uc, _ := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{})
	require.NoError(t, err)

	for _, text := range []string{"one", "two", "three"} {
		_, err := uc.PostMessage(ctx, PostMessageInput{
			ConversationID: conversation.ID,
			SenderID:       "visitor-1",
			SenderType:     entity.SenderUser,
			Text:           text,
		})
		require.NoError(t, err)
	}

	messages, total, err := uc.ListMessages(ctx, conversation.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, messages, 3)

	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}
	assert.Equal(t, "one", messages[0].Message)
	assert.Equal(t, "three", messages[2].Message)

	_, _, err = uc.ListMessages(ctx, "no-such-conversation", 0, 0)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListMessagesRequiresOwnership(t *testing.T) {
	uc, _ := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{})
	require.NoError(t, err)

	_, err = uc.PostMessage(ctx, PostMessageInput{
		ConversationID: conversation.ID,
		SenderID:       "visitor-1",
		SenderType:     entity.SenderUser,
		Text:           "hello",
	})
	require.NoError(t, err)

	messages, total, err := uc.ListMessagesFor(ctx, conversation.ID, "visitor-1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)

	// Someone else's conversation reads as missing, not forbidden.
	_, _, err = uc.ListMessagesFor(ctx, conversation.ID, "visitor-2", 0, 0)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestMarkReadFlipsOppositeParty(t *testing.T) {
	uc, chatRepo := newChatFixture()
	ctx := context.Background()

	conversation, err := uc.OpenConversation(ctx, "visitor-1", OpenConversationInput{})
	require.NoError(t, err)

	_, err = uc.PostMessage(ctx, PostMessageInput{
		ConversationID: conversation.ID,
		SenderID:       "visitor-1",
		SenderType:     entity.SenderUser,
		Text:           "hello",
	})
	require.NoError(t, err)

	_, err = uc.PostMessage(ctx, PostMessageInput{
		ConversationID: conversation.ID,
		SenderID:       "admin-1",
		SenderType:     entity.SenderAdmin,
		Text:           "hi there",
	})
	require.NoError(t, err)

	// The admin viewer marks user-authored messages, not their own.
	require.NoError(t, uc.MarkRead(ctx, conversation.ID, entity.SenderAdmin))

	userUnread, err := chatRepo.CountUnread(ctx, conversation.ID, entity.SenderUser)
	require.NoError(t, err)
	assert.Equal(t, 0, userUnread)

	adminUnread, err := chatRepo.CountUnread(ctx, conversation.ID, entity.SenderAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, adminUnread)
}
