package handler

import (
	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/service"
	"civicserve/internal/usecase"
	"civicserve/pkg/errors"
	"civicserve/pkg/response"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	requestUseCase *usecase.RequestUseCase
}

func NewPaymentHandler(paymentService service.PaymentService, requestUseCase *usecase.RequestUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		requestUseCase: requestUseCase,
	}
}

type createPaymentIntentRequest struct {
	AmountCents int64  `json:"amount" validate:"required,gt=0"`
	ServiceID   string `json:"serviceId" validate:"required"`
	ServiceType string `json:"serviceType" validate:"required"`
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req createPaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	// Prices for catalog services come from the catalog, never the
	// client-supplied amount.
	if item, ok := entity.CatalogItemByID(req.ServiceID); ok && item.PriceCents > 0 {
		if req.AmountCents != item.PriceCents {
			return response.Error(c, errors.BadRequest("Amount does not match the service price", nil))
		}
	}

	userID, _ := c.Get("uid").(string)

	intent, err := h.paymentService.CreateIntent(c.Request().Context(), service.PaymentIntentRequest{
		AmountCents: req.AmountCents,
		Currency:    "usd",
		ServiceID:   req.ServiceID,
		ServiceType: req.ServiceType,
		UserID:      userID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

type confirmPaymentRequest struct {
	RequestID       string `json:"requestId"`
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.requestUseCase.MarkPaid(c.Request().Context(), req.RequestID, req.PaymentIntentID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}
