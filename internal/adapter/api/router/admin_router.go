package router

import (
	"civicserve/internal/adapter/api/handler"
	"civicserve/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/api/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/requests", adminHandler.ListRequests)
	admin.PATCH("/requests/:id/status", adminHandler.SetStatus)
	admin.POST("/requests/:id/respond", adminHandler.AttachResponse)

	admin.GET("/conversations", adminHandler.ListConversations)
	admin.POST("/conversations/:id/read", adminHandler.MarkConversationRead)
	admin.PATCH("/conversations/:id/close", adminHandler.CloseConversation)
	admin.GET("/conversations/:id/messages", adminHandler.ListMessages)
	admin.POST("/conversations/:id/messages", adminHandler.PostMessage)

	admin.GET("/orphaned-payments", adminHandler.ListOrphanedPayments)
	admin.POST("/orphaned-payments/:id/resolve", adminHandler.ResolveOrphanedPayment)
}
