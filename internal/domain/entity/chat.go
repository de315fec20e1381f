package entity

import "time"

type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationClosed ConversationStatus = "closed"
)

// Conversation is a chat thread between a visitor and the city's
// support operators. A visitor has at most one active conversation;
// closing is terminal and a later open starts a fresh thread.
type Conversation struct {
	ID           string             `json:"id" firestore:"id"`
	VisitorID    string             `json:"visitor_id" firestore:"visitorId"`
	UserID       string             `json:"user_id,omitempty" firestore:"userId,omitempty"`
	VisitorName  string             `json:"visitor_name,omitempty" firestore:"visitorName,omitempty"`
	VisitorEmail string             `json:"visitor_email,omitempty" firestore:"visitorEmail,omitempty"`
	Status       ConversationStatus `json:"status" firestore:"status"`
	CreatedAt    time.Time          `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time          `json:"updated_at" firestore:"updatedAt"`
}

// ConversationView is the operator list projection: the conversation with
// its latest message and a freshly computed unread count.
type ConversationView struct {
	*Conversation
	LastMessage *ChatMessage `json:"last_message,omitempty"`
	UnreadCount int          `json:"unread_count"`
}
