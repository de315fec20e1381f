package entity

import "time"

// OrphanedPayment records a confirmed charge whose follow-up request
// creation failed. The payment saga writes one row per occurrence so
// operators can reconcile or refund; it is never created on the happy path.
type OrphanedPayment struct {
	ID              string     `json:"id" firestore:"id"`
	PaymentIntentID string     `json:"payment_intent_id" firestore:"paymentIntentId"`
	AmountCents     int64      `json:"amount_cents" firestore:"amountCents"`
	ServiceID       string     `json:"service_id" firestore:"serviceId"`
	UserID          string     `json:"user_id,omitempty" firestore:"userId,omitempty"`
	FailureReason   string     `json:"failure_reason" firestore:"failureReason"`
	Resolved        bool       `json:"resolved" firestore:"resolved"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	CreatedAt       time.Time  `json:"created_at" firestore:"createdAt"`
}
