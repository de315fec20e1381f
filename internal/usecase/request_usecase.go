package usecase

import (
	"context"
	"time"

	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/repository"
	"civicserve/pkg/errors"
	"civicserve/pkg/logger"
)

type RequestUseCase struct {
	requestRepo repository.ServiceRequestRepository
	userRepo    repository.UserRepository
}

func NewRequestUseCase(
	requestRepo repository.ServiceRequestRepository,
	userRepo repository.UserRepository,
) *RequestUseCase {
	return &RequestUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

type CreateRequestInput struct {
	ServiceID   string
	ServiceType string
	FormData    map[string]interface{}

	// AmountCents overrides the catalog price when set; nil means
	// "price from catalog, or free for unlisted services".
	AmountCents *int64
}

// quickServices maps the fixed quick-service categories to their
// display labels. Routed categories enter submitted directly; the
// rest sit in pending until an operator picks them up.
var quickServices = map[string]struct {
	Label  string
	Routed bool
}{
	"missed-collection": {Label: "Quick Service - Missed Collection", Routed: true},
	"illegal-dumping":   {Label: "Quick Service - Illegal Dumping", Routed: true},
	"dead-animal":       {Label: "Quick Service - Dead Animal Removal", Routed: true},
	"bulk-inquiry":      {Label: "Quick Service - Bulk Item Inquiry", Routed: false},
}

func (uc *RequestUseCase) CreateRequest(ctx context.Context, userID string, input CreateRequestInput) (*entity.ServiceRequest, error) {
	if input.ServiceID == "" {
		return nil, errors.Validation("service_id is required", nil)
	}
	if input.ServiceType == "" {
		return nil, errors.Validation("service_type is required", nil)
	}

	amount := input.AmountCents
	if amount == nil {
		if item, ok := entity.CatalogItemByID(input.ServiceID); ok && item.PriceCents > 0 {
			price := item.PriceCents
			amount = &price
		}
	}

	request := &entity.ServiceRequest{
		UserID:      userID,
		ServiceType: input.ServiceType,
		ServiceID:   input.ServiceID,
		FormData:    input.FormData,
		AmountCents: amount,
		Status:      entity.StatusSubmitted,
	}
	if request.RequiresPayment() {
		request.Status = entity.StatusPendingPayment
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Service request created: id=%s service=%s status=%s", request.ID, request.ServiceID, request.Status)
	return request, nil
}

type QuickRequestInput struct {
	Category string
	FormData map[string]interface{}
}

// CreateQuickRequest creates an anonymous quick-service request from
// the fixed category set. Quick services are always free.
func (uc *RequestUseCase) CreateQuickRequest(ctx context.Context, input QuickRequestInput) (*entity.ServiceRequest, error) {
	mapping, ok := quickServices[input.Category]
	if !ok {
		return nil, errors.Validation("unknown quick service category", nil)
	}

	status := entity.StatusPending
	if mapping.Routed {
		status = entity.StatusSubmitted
	}

	zero := int64(0)
	request := &entity.ServiceRequest{
		ServiceType: mapping.Label,
		ServiceID:   "quick-" + input.Category,
		FormData:    input.FormData,
		AmountCents: &zero,
		Status:      status,
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// MarkPaid records a confirmed charge on a pending_payment request.
// Idempotent: repeating the call with the same payment intent returns
// the request unchanged.
func (uc *RequestUseCase) MarkPaid(ctx context.Context, requestID, paymentIntentID string) (*entity.ServiceRequest, error) {
	if paymentIntentID == "" {
		return nil, errors.Validation("payment_intent_id is required", nil)
	}

	var request *entity.ServiceRequest
	var err error
	if requestID != "" {
		request, err = uc.requestRepo.GetByID(ctx, requestID)
	} else {
		// Confirm calls may carry only the intent id.
		request, err = uc.requestRepo.GetByPaymentIntentID(ctx, paymentIntentID)
	}
	if err != nil {
		return nil, err
	}

	if request.PaymentIntentID == paymentIntentID && request.Status != entity.StatusPendingPayment {
		return request, nil
	}

	if request.Status != entity.StatusPendingPayment {
		return nil, errors.BadRequest("Request is not awaiting payment", nil)
	}

	request.PaymentIntentID = paymentIntentID
	request.Status = uc.statusAfterPayment(request.ServiceID)

	if err := uc.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Service request paid: id=%s intent=%s status=%s", request.ID, paymentIntentID, request.Status)
	return request, nil
}

// statusAfterPayment routes a freshly paid request. Cart-class services
// need manual review; rentals wait at paid for operator scheduling;
// everything else is submitted outright.
func (uc *RequestUseCase) statusAfterPayment(serviceID string) entity.RequestStatus {
	item, ok := entity.CatalogItemByID(serviceID)
	if !ok {
		return entity.StatusSubmitted
	}
	if item.RollCart {
		return entity.StatusInvestigating
	}
	if item.RentalDays > 0 {
		return entity.StatusPaid
	}
	return entity.StatusSubmitted
}

// SetStatus applies an operator status change. The transition graph is
// permissive but terminal states are final and payment-gated states
// cannot be set directly.
func (uc *RequestUseCase) SetStatus(ctx context.Context, requestID string, newStatus entity.RequestStatus) (*entity.ServiceRequest, error) {
	if !newStatus.IsValid() {
		return nil, errors.Validation("unknown status", nil)
	}

	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(request.Status, newStatus) {
		return nil, errors.BadRequest("Status transition not allowed", nil)
	}

	request.Status = newStatus
	if err := uc.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// AttachResponse stores an operator's textual response, stamps the
// response time and applies newStatus in the same update. An empty
// newStatus defaults to responded.
func (uc *RequestUseCase) AttachResponse(ctx context.Context, requestID, text string, newStatus entity.RequestStatus) (*entity.ServiceRequest, error) {
	if text == "" {
		return nil, errors.Validation("response text is required", nil)
	}
	if newStatus == "" {
		newStatus = entity.StatusResponded
	}
	if !newStatus.IsValid() {
		return nil, errors.Validation("unknown status", nil)
	}

	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !entity.CanTransition(request.Status, newStatus) {
		return nil, errors.BadRequest("Status transition not allowed", nil)
	}

	now := time.Now()
	request.AdminResponse = text
	request.AdminRespondedAt = &now
	request.Status = newStatus

	if err := uc.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (uc *RequestUseCase) GetByID(ctx context.Context, requestID string) (*entity.ServiceRequest, error) {
	return uc.requestRepo.GetByID(ctx, requestID)
}

func (uc *RequestUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.ServiceRequest, error) {
	return uc.requestRepo.ListByUserID(ctx, userID)
}

// ListForAdmin returns requests joined with the minimal requester
// profile; anonymous rows carry a nil profile.
func (uc *RequestUseCase) ListForAdmin(ctx context.Context, statusFilter entity.RequestStatus, limit, offset int) ([]*entity.AdminRequestView, int64, error) {
	if statusFilter != "" && !statusFilter.IsValid() {
		return nil, 0, errors.Validation("unknown status filter", nil)
	}

	requests, total, err := uc.requestRepo.List(ctx, statusFilter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*entity.AdminRequestView, 0, len(requests))
	profiles := make(map[string]*entity.UserProfile)

	for _, request := range requests {
		view := &entity.AdminRequestView{ServiceRequest: request}

		if request.UserID != "" {
			profile, ok := profiles[request.UserID]
			if !ok {
				user, err := uc.userRepo.GetByID(ctx, request.UserID)
				if err != nil {
					if !errors.Is(err, "NOT_FOUND") {
						return nil, 0, err
					}
					// Stale user reference; list the request anonymously.
					logger.Warn("Requester %s missing for request %s", request.UserID, request.ID)
				} else {
					profile = user.Profile()
				}
				profiles[request.UserID] = profile
			}
			view.Requester = profile
		}

		views = append(views, view)
	}

	return views, total, nil
}
