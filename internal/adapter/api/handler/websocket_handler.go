package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"civicserve/internal/adapter/api/middleware"
	"civicserve/internal/infrastructure/firebase"
	"civicserve/internal/infrastructure/realtime"
	"civicserve/internal/usecase"
	"civicserve/pkg/errors"
	"civicserve/pkg/response"
)

// WebSocketHandler upgrades chat widgets onto the push channel. The
// poll endpoints remain authoritative; a dropped socket costs nothing
// but latency.
type WebSocketHandler struct {
	hub            *realtime.Hub
	chatUseCase    *usecase.ChatUseCase
	authMiddleware *middleware.AuthMiddleware
	issuer         *firebase.VisitorTokenIssuer
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(hub *realtime.Hub, chatUseCase *usecase.ChatUseCase, authMiddleware *middleware.AuthMiddleware, issuer *firebase.VisitorTokenIssuer) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		chatUseCase:    chatUseCase,
		authMiddleware: authMiddleware,
		issuer:         issuer,
	}
}

// resolveIdentity pulls the caller's identity out of the query string.
// Browsers cannot attach headers to websocket upgrades, so the token
// travels as a query param instead.
func (h *WebSocketHandler) resolveIdentity(c echo.Context) (string, error) {
	if token := c.QueryParam("auth_token"); token != "" {
		uid, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
		if err != nil {
			return "", errors.Unauthorized("Invalid or expired token", err)
		}
		return uid, nil
	}

	if token := c.QueryParam("visitor_token"); token != "" {
		return h.issuer.Verify(token)
	}

	if visitorID := c.QueryParam("visitor_id"); visitorID != "" {
		return visitorID, nil
	}

	return "", errors.Unauthorized("Visitor identity is required", nil)
}

func (h *WebSocketHandler) HandleChatSocket(c echo.Context) error {
	conversationID := c.QueryParam("conversation_id")
	if conversationID == "" {
		return response.Error(c, errors.Validation("conversation_id is required", nil))
	}

	visitorID, err := h.resolveIdentity(c)
	if err != nil {
		return response.Error(c, err)
	}

	// The subscription is only valid for a conversation the caller owns.
	if _, _, err := h.chatUseCase.ListMessagesFor(c.Request().Context(), conversationID, visitorID, 1, 0); err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &realtime.Client{
		ConversationID: conversationID,
		Conn:           conn,
		Send:           make(chan []byte, 256),
	}

	h.hub.Register <- client

	go client.ReadPump(h.hub)
	go client.WritePump()

	return nil
}
