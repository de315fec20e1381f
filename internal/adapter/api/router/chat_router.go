package router

import (
	"civicserve/internal/adapter/api/handler"
	"civicserve/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupChatRouter wires the visitor-facing chat endpoints. Polling is
// the contract; the websocket route is an optional push upgrade.
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, visitorMiddleware *middleware.VisitorMiddleware, wsHandler *handler.WebSocketHandler) {
	chatHandler := handler.GetChatHandler()

	chat := e.Group("/api/chat")
	chat.POST("/visitor-token", handler.GetVisitorTokenHandler().IssueToken)
	chat.GET("/ws", wsHandler.HandleChatSocket)

	identified := chat.Group("")
	identified.Use(authMiddleware.OptionalAuthenticate)
	identified.Use(visitorMiddleware.Identify)
	identified.POST("/conversations", chatHandler.OpenConversation)
	identified.GET("/conversations/:id/messages", chatHandler.ListMessages)
	identified.POST("/messages", chatHandler.PostMessage)
}
