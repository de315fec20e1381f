package service

import "context"

// PaymentIntentRequest describes a charge to be authorized by the
// Payment Processor. Amounts are minor currency units.
type PaymentIntentRequest struct {
	AmountCents int64
	Currency    string
	ServiceID   string
	ServiceType string
	UserID      string
}

// PaymentIntent is the processor's handle for a pending charge. The
// client secret is handed to the presentation layer to finish the
// charge; the intent id is what the core stores on the request.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Status       string // "requires_payment_method", "succeeded", ...
}

// PaymentService is the contract point with the external Payment
// Processor. Implementations must map non-2xx responses to PAYMENT_ERROR.
type PaymentService interface {
	CreateIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
}
