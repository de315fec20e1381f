package router

import (
	"civicserve/internal/adapter/api/handler"
	"civicserve/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	visitorMiddleware *middleware.VisitorMiddleware,
	paymentHandler *handler.PaymentHandler,
	wsHandler *handler.WebSocketHandler,
) {
	SetupRequestRouter(e, authMiddleware)
	SetupSubmissionRouter(e, authMiddleware)
	SetupAddressRouter(e, authMiddleware)
	SetupPaymentRouter(e, authMiddleware, paymentHandler)
	SetupChatRouter(e, authMiddleware, visitorMiddleware, wsHandler)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupCatalogRouter(e)
	SetupUploadRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
