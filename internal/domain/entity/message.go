package entity

import "time"

type SenderType string

const (
	SenderUser  SenderType = "user"
	SenderAdmin SenderType = "admin"
)

// ChatMessage is append-only; only IsRead may change after creation.
// IsRead is meaningful for user-sent messages as seen by an operator.
type ChatMessage struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversation_id" firestore:"conversationId"`
	SenderID       string     `json:"sender_id" firestore:"senderId"`
	SenderType     SenderType `json:"sender_type" firestore:"senderType"`
	Message        string     `json:"message" firestore:"message"`
	IsRead         bool       `json:"is_read" firestore:"isRead"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
}
