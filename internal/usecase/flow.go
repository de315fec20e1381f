package usecase

import (
	"sync"
	"time"

	"civicserve/internal/domain/entity"
	"civicserve/pkg/errors"
	"civicserve/pkg/utils"
)

// FlowVariant selects which multi-step submission workflow a flow
// instance runs.
type FlowVariant string

const (
	// FlowCartRequest collects reason, details and mandatory photo
	// evidence for cart-class services (extra cart, cart repair).
	FlowCartRequest FlowVariant = "cart_request"

	// FlowRental collects address, delivery date and payment for
	// priced container rentals.
	FlowRental FlowVariant = "rental"
)

type FlowStep string

const (
	// Cart request steps
	StepReasonSelect   FlowStep = "reason-select"
	StepDetailEntry    FlowStep = "detail-entry"
	StepEvidenceUpload FlowStep = "evidence-upload"
	StepSubmitted      FlowStep = "submitted"

	// Rental steps
	StepAddressEntry  FlowStep = "address-entry"
	StepDateEntry     FlowStep = "date-entry"
	StepPaymentReview FlowStep = "payment-review"
	StepConfirmation  FlowStep = "confirmation"
)

// flowSuccessors is the single source of truth for forward movement:
// a step missing from the map is terminal.
var flowSuccessors = map[FlowStep]FlowStep{
	StepReasonSelect:   StepDetailEntry,
	StepDetailEntry:    StepEvidenceUpload,
	StepEvidenceUpload: StepSubmitted,

	StepAddressEntry:  StepDateEntry,
	StepDateEntry:     StepPaymentReview,
	StepPaymentReview: StepConfirmation,
}

var flowPredecessors = map[FlowStep]FlowStep{
	StepDetailEntry:    StepReasonSelect,
	StepEvidenceUpload: StepDetailEntry,

	StepDateEntry:     StepAddressEntry,
	StepPaymentReview: StepDateEntry,
}

// MinLeadBusinessDays is the earliest a rental delivery may be
// scheduled, counted in business days from today.
const MinLeadBusinessDays = 3

// CartReasons enumerates the selectable reasons for a cart request.
var CartReasons = []string{
	"additional-needed",
	"damaged",
	"stolen",
	"never-received",
}

// FlowForm holds everything the user has entered so far. Back
// navigation never clears it, so returning to a completed step always
// shows the previously entered values.
type FlowForm struct {
	// Cart request fields
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
	LocationTag string `json:"location_tag,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`

	// Rental fields
	Street       string     `json:"street,omitempty"`
	Apt          string     `json:"apt,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	Zip          string     `json:"zip,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
}

// FlowState is one in-progress submission. It lives in memory for the
// duration of the client session and produces at most one service
// request over its lifetime.
type FlowState struct {
	ID      string             `json:"id"`
	Variant FlowVariant        `json:"variant"`
	UserID  string             `json:"user_id,omitempty"`
	Option  entity.CatalogItem `json:"option"`
	Step    FlowStep           `json:"step"`
	Form    FlowForm           `json:"form"`

	// RequestID is set exactly once, when the terminal submission
	// succeeds; a non-empty value means the flow can never submit again.
	RequestID string `json:"request_id,omitempty"`

	// PaymentIntentID survives failed payment attempts so a retry
	// reuses the same intent instead of charging twice.
	PaymentIntentID string `json:"payment_intent_id,omitempty"`

	LastActivity time.Time `json:"-"`

	// mu serializes all mutation of one flow. The usecase's map lock
	// covers lookups and inserts only, so a slow payment call on one
	// flow never blocks another user's flow.
	mu sync.Mutex
}

// StepInput carries the fields a client may set on its current step.
// Irrelevant fields are ignored by Apply.
type StepInput struct {
	Reason      string
	Description string
	LocationTag string
	PhotoURL    string

	Street       string
	Apt          string
	City         string
	State        string
	Zip          string
	DeliveryDate *time.Time
	Instructions string
}

func (f *FlowState) initialStep() FlowStep {
	if f.Variant == FlowCartRequest {
		return StepReasonSelect
	}
	return StepAddressEntry
}

// IsTerminal reports whether the flow has reached its display-only end
// state and cannot move again.
func (f *FlowState) IsTerminal() bool {
	_, ok := flowSuccessors[f.Step]
	return !ok
}

// Apply merges the input fields belonging to the current step into the
// form. Fields owned by other steps are left untouched, which keeps
// back navigation lossless.
func (f *FlowState) Apply(input StepInput) {
	switch f.Step {
	case StepReasonSelect:
		if input.Reason != "" {
			f.Form.Reason = input.Reason
		}
	case StepDetailEntry:
		if input.Description != "" {
			f.Form.Description = input.Description
		}
		if input.LocationTag != "" {
			f.Form.LocationTag = input.LocationTag
		}
	case StepEvidenceUpload:
		if input.PhotoURL != "" {
			f.Form.PhotoURL = input.PhotoURL
		}
	case StepAddressEntry:
		if input.Street != "" {
			f.Form.Street = input.Street
		}
		if input.Apt != "" {
			f.Form.Apt = input.Apt
		}
		if input.City != "" {
			f.Form.City = input.City
		}
		if input.State != "" {
			f.Form.State = input.State
		}
		if input.Zip != "" {
			f.Form.Zip = input.Zip
		}
	case StepDateEntry:
		if input.DeliveryDate != nil {
			f.Form.DeliveryDate = input.DeliveryDate
		}
		if input.Instructions != "" {
			f.Form.Instructions = input.Instructions
		}
	}
}

// Validate checks the current step's collected input. It is pure: no
// network, no storage, so a failure blocks advancement locally.
func (f *FlowState) Validate(now time.Time) error {
	switch f.Step {
	case StepReasonSelect:
		for _, reason := range CartReasons {
			if f.Form.Reason == reason {
				return nil
			}
		}
		return errors.Validation("a reason must be selected", nil)

	case StepDetailEntry:
		if f.Form.Description == "" {
			return errors.Validation("a description is required", nil)
		}
		return nil

	case StepEvidenceUpload:
		// The backend cannot service a cart request without
		// photographic evidence.
		if f.Form.PhotoURL == "" {
			return errors.Validation("a photo is required", nil)
		}
		return nil

	case StepAddressEntry:
		if f.Form.Street == "" || f.Form.City == "" || f.Form.Zip == "" {
			return errors.Validation("street, city and zip are required", nil)
		}
		return nil

	case StepDateEntry:
		if f.Form.DeliveryDate == nil {
			return errors.Validation("a delivery date is required", nil)
		}
		if utils.BusinessDaysUntil(now, *f.Form.DeliveryDate) < MinLeadBusinessDays {
			return errors.Validation("delivery date must be at least 3 business days out", nil)
		}
		return nil

	case StepPaymentReview:
		return nil
	}

	return errors.BadRequest("Flow step cannot advance", nil)
}

// formData snapshots the collected form into a request payload. The
// snapshot copies values; later address-book edits never touch it.
func (f *FlowState) formData() map[string]interface{} {
	data := map[string]interface{}{
		"option_name": f.Option.Name,
	}

	switch f.Variant {
	case FlowCartRequest:
		data["reason"] = f.Form.Reason
		data["description"] = f.Form.Description
		if f.Form.LocationTag != "" {
			data["location"] = f.Form.LocationTag
		}
		data["photo_url"] = f.Form.PhotoURL

	case FlowRental:
		address := map[string]interface{}{
			"street": f.Form.Street,
			"city":   f.Form.City,
			"zip":    f.Form.Zip,
		}
		if f.Form.Apt != "" {
			address["apt"] = f.Form.Apt
		}
		if f.Form.State != "" {
			address["state"] = f.Form.State
		}
		data["address"] = address
		if f.Form.DeliveryDate != nil {
			data["delivery_date"] = f.Form.DeliveryDate.Format("2006-01-02")
		}
		if f.Form.Instructions != "" {
			data["instructions"] = f.Form.Instructions
		}
		if f.Option.RentalDays > 0 {
			data["rental_days"] = f.Option.RentalDays
		}
	}

	return data
}
