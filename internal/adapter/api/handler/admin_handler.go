package handler

import (
	"civicserve/internal/domain/entity"
	"civicserve/internal/usecase"
	"civicserve/pkg/response"
	"civicserve/pkg/utils"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

func (h *AdminHandler) ListRequests(c echo.Context) error {
	statusFilter := entity.RequestStatus(c.QueryParam("status"))
	pagination := utils.GetPaginationParams(c)

	views, total, err := h.adminUseCase.ListRequests(
		c.Request().Context(),
		statusFilter,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, views, total, pagination.Page, pagination.PageSize)
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminHandler) SetStatus(c echo.Context) error {
	id := c.Param("id")

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.adminUseCase.SetStatus(c.Request().Context(), id, entity.RequestStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

type respondRequest struct {
	Text   string `json:"text" validate:"required"`
	Status string `json:"status"`
}

func (h *AdminHandler) AttachResponse(c echo.Context) error {
	id := c.Param("id")

	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.adminUseCase.AttachResponse(c.Request().Context(), id, req.Text, entity.RequestStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *AdminHandler) ListConversations(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	views, total, err := h.adminUseCase.ListConversations(
		c.Request().Context(),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, views, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) ListMessages(c echo.Context) error {
	conversationID := c.Param("id")
	pagination := utils.GetPaginationParams(c)

	// Same contract as the visitor endpoint: no explicit paging means
	// the full history.
	limit, offset := 0, 0
	if c.QueryParam("page") != "" || c.QueryParam("limit") != "" {
		limit, offset = pagination.PageSize, pagination.Offset
	}

	messages, total, err := h.adminUseCase.ListMessages(c.Request().Context(), conversationID, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	if limit == 0 {
		return response.Success(c, messages)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) MarkConversationRead(c echo.Context) error {
	id := c.Param("id")

	if err := h.adminUseCase.MarkConversationRead(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Conversation marked as read",
	})
}

func (h *AdminHandler) CloseConversation(c echo.Context) error {
	id := c.Param("id")

	conversation, err := h.adminUseCase.CloseConversation(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

type adminMessageRequest struct {
	Text string `json:"text"`
}

// PostMessage lets an operator reply inside a conversation.
func (h *AdminHandler) PostMessage(c echo.Context) error {
	id := c.Param("id")

	var req adminMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	adminID := c.Get("uid").(string)

	message, err := h.adminUseCase.PostMessage(c.Request().Context(), id, adminID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *AdminHandler) ListOrphanedPayments(c echo.Context) error {
	payments, err := h.adminUseCase.ListOrphanedPayments(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payments)
}

func (h *AdminHandler) ResolveOrphanedPayment(c echo.Context) error {
	id := c.Param("id")

	if err := h.adminUseCase.ResolveOrphanedPayment(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Orphaned payment resolved",
	})
}
