package router

import (
	"civicserve/internal/adapter/api/handler"
	"civicserve/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, paymentHandler *handler.PaymentHandler) {
	e.POST("/api/create-payment-intent", paymentHandler.CreatePaymentIntent,
		authMiddleware.OptionalAuthenticate, middleware.PaymentRateLimit())
	e.POST("/api/confirm-payment", paymentHandler.ConfirmPayment,
		authMiddleware.OptionalAuthenticate, middleware.PaymentRateLimit())
}
