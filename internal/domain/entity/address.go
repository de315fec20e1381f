package entity

import "time"

// SavedAddress is a user-owned service address. Requests copy address
// fields into their form data, so deleting a saved address never
// affects existing requests.
type SavedAddress struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Street    string    `json:"street" firestore:"street"`
	Apt       string    `json:"apt,omitempty" firestore:"apt,omitempty"`
	City      string    `json:"city" firestore:"city"`
	State     string    `json:"state" firestore:"state"`
	Zip       string    `json:"zip" firestore:"zip"`
	IsDefault bool      `json:"is_default" firestore:"isDefault"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
