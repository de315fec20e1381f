package handler

import (
	"civicserve/internal/domain/entity"
	"civicserve/internal/usecase"
	"civicserve/pkg/response"
	"civicserve/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type openConversationRequest struct {
	VisitorName  string `json:"visitor_name"`
	VisitorEmail string `json:"visitor_email"`
}

func (h *ChatHandler) OpenConversation(c echo.Context) error {
	var req openConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	visitorID, _ := c.Get("visitor_id").(string)
	userID, _ := c.Get("uid").(string)

	conversation, err := h.chatUseCase.OpenConversation(
		c.Request().Context(),
		visitorID,
		usecase.OpenConversationInput{
			UserID:       userID,
			VisitorName:  req.VisitorName,
			VisitorEmail: req.VisitorEmail,
		},
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

type postMessageRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	Text           string `json:"text"`
}

func (h *ChatHandler) PostMessage(c echo.Context) error {
	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	visitorID, _ := c.Get("visitor_id").(string)

	message, err := h.chatUseCase.PostMessage(c.Request().Context(), usecase.PostMessageInput{
		ConversationID: req.ConversationID,
		SenderID:       visitorID,
		SenderType:     entity.SenderUser,
		Text:           req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	conversationID := c.Param("id")
	visitorID, _ := c.Get("visitor_id").(string)
	pagination := utils.GetPaginationParams(c)

	// Without explicit paging the full history comes back, matching the
	// widget's poll loop.
	limit, offset := 0, 0
	if c.QueryParam("page") != "" || c.QueryParam("limit") != "" {
		limit, offset = pagination.PageSize, pagination.Offset
	}

	messages, total, err := h.chatUseCase.ListMessagesFor(c.Request().Context(), conversationID, visitorID, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	if limit == 0 {
		return response.Success(c, messages)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}
