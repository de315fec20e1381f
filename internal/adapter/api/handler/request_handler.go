package handler

import (
	"civicserve/internal/usecase"
	"civicserve/pkg/errors"
	"civicserve/pkg/response"

	"github.com/labstack/echo/v4"
)

type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
}

func NewRequestHandler(requestUseCase *usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
	}
}

type createRequestRequest struct {
	ServiceID   string                 `json:"service_id" validate:"required"`
	ServiceType string                 `json:"service_type" validate:"required"`
	FormData    map[string]interface{} `json:"form_data"`
	AmountCents *int64                 `json:"amount_cents"`
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	request, err := h.requestUseCase.CreateRequest(
		c.Request().Context(),
		userID,
		usecase.CreateRequestInput{
			ServiceID:   req.ServiceID,
			ServiceType: req.ServiceType,
			FormData:    req.FormData,
			AmountCents: req.AmountCents,
		},
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *RequestHandler) ListMyRequests(c echo.Context) error {
	userID := c.Get("uid").(string)

	requests, err := h.requestUseCase.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	id := c.Param("id")

	request, err := h.requestUseCase.GetByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	// Owners only; anonymous rows are reachable by nobody here.
	if uid, _ := c.Get("uid").(string); request.UserID != uid {
		return response.Error(c, errors.NotFound("Service request", nil))
	}

	return response.Success(c, request)
}

type quickRequestRequest struct {
	Category string                 `json:"category" validate:"required"`
	FormData map[string]interface{} `json:"form_data"`
}

func (h *RequestHandler) CreateQuickRequest(c echo.Context) error {
	var req quickRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.requestUseCase.CreateQuickRequest(
		c.Request().Context(),
		usecase.QuickRequestInput{
			Category: req.Category,
			FormData: req.FormData,
		},
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}
