package entity

import "time"

type ServiceRequest struct {
	ID          string                 `json:"id" firestore:"id"`
	UserID      string                 `json:"user_id,omitempty" firestore:"userId,omitempty"` // empty for anonymous quick-service requests
	ServiceType string                 `json:"service_type" firestore:"serviceType"`
	ServiceID   string                 `json:"service_id" firestore:"serviceId"`
	FormData    map[string]interface{} `json:"form_data,omitempty" firestore:"formData,omitempty"`

	// AmountCents is nil when the service is free.
	AmountCents *int64 `json:"amount_cents,omitempty" firestore:"amountCents,omitempty"`

	Status RequestStatus `json:"status" firestore:"status"`

	AdminResponse    string     `json:"admin_response,omitempty" firestore:"adminResponse,omitempty"`
	AdminRespondedAt *time.Time `json:"admin_responded_at,omitempty" firestore:"adminRespondedAt,omitempty"`

	PaymentIntentID string `json:"payment_intent_id,omitempty" firestore:"paymentIntentId,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// RequiresPayment reports whether the request must pass through the
// pending_payment/paid gate before reaching a terminal success status.
func (r *ServiceRequest) RequiresPayment() bool {
	return r.AmountCents != nil && *r.AmountCents > 0
}

// UserProfile is the minimal projection joined onto admin request listings.
type UserProfile struct {
	FirstName string `json:"first_name" firestore:"firstName"`
	LastName  string `json:"last_name" firestore:"lastName"`
	Email     string `json:"email" firestore:"email"`
	Phone     string `json:"phone,omitempty" firestore:"phone,omitempty"`
}

// AdminRequestView is a request joined with its requester's profile,
// nil for anonymous rows.
type AdminRequestView struct {
	*ServiceRequest
	Requester *UserProfile `json:"requester,omitempty"`
}
