package realtime

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is a WebSocket subscriber watching a single conversation.
type Client struct {
	ConversationID string
	Conn           *websocket.Conn
	Send           chan []byte
}

// Hub fans stored chat messages out to sockets subscribed to their
// conversation. The poll endpoints stay the source of truth; the hub
// only shortens the wait until the next poll tick would surface a
// message anyway.
type Hub struct {
	subscribers map[string]map[*Client]bool // conversationID -> clients
	Register    chan *Client
	Unregister  chan *Client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Client]bool),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
	}
}

// Start runs the hub's main loop in a goroutine
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				if h.subscribers[client.ConversationID] == nil {
					h.subscribers[client.ConversationID] = make(map[*Client]bool)
				}
				h.subscribers[client.ConversationID][client] = true
				h.mutex.Unlock()
				log.Printf("Chat subscriber registered: conversation=%s", client.ConversationID)

			case client := <-h.Unregister:
				h.mutex.Lock()
				if clients, ok := h.subscribers[client.ConversationID]; ok {
					if clients[client] {
						delete(clients, client)
						close(client.Send)
					}
					if len(clients) == 0 {
						delete(h.subscribers, client.ConversationID)
					}
				}
				h.mutex.Unlock()
				log.Printf("Chat subscriber unregistered: conversation=%s", client.ConversationID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Broadcast sends a payload to every subscriber of a conversation.
// Slow clients are dropped rather than blocking the caller.
func (h *Hub) Broadcast(conversationID string, payload []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.subscribers[conversationID] {
		select {
		case client.Send <- payload:
		default:
			close(client.Send)
			delete(h.subscribers[conversationID], client)
		}
	}
}

// ReadPump drains the socket until the peer closes it.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			break
		}
	}
}

// WritePump forwards queued payloads to the socket.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for payload := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
