package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/repository"
	"civicserve/internal/domain/service"
	"civicserve/pkg/errors"
	"civicserve/pkg/logger"
)

// SubmissionUseCase holds every in-progress multi-step submission and
// drives the payment saga for priced flows. Flow state is per client
// session and in memory only: a lost flow costs the user re-entry, not
// data, because nothing persists before the terminal submission.
type SubmissionUseCase struct {
	mu    sync.RWMutex // guards the flows map; each flow carries its own lock
	flows map[string]*FlowState

	requestUC   *RequestUseCase
	payments    service.PaymentService
	orphanRepo  repository.OrphanedPaymentRepository
	addressRepo repository.AddressRepository

	now func() time.Time
}

func NewSubmissionUseCase(
	requestUC *RequestUseCase,
	payments service.PaymentService,
	orphanRepo repository.OrphanedPaymentRepository,
	addressRepo repository.AddressRepository,
) *SubmissionUseCase {
	return &SubmissionUseCase{
		flows:       make(map[string]*FlowState),
		requestUC:   requestUC,
		payments:    payments,
		orphanRepo:  orphanRepo,
		addressRepo: addressRepo,
		now:         time.Now,
	}
}

// StartFlow opens a new flow instance for a catalog option. Cart-class
// options run the evidence workflow; priced rentals run the payment
// workflow.
func (uc *SubmissionUseCase) StartFlow(userID, serviceID string) (*FlowState, error) {
	option, ok := entity.CatalogItemByID(serviceID)
	if !ok {
		return nil, errors.NotFound("Catalog item", nil)
	}

	variant := FlowRental
	if option.RollCart {
		variant = FlowCartRequest
	}

	flow := &FlowState{
		ID:           uuid.New().String(),
		Variant:      variant,
		UserID:       userID,
		Option:       option,
		LastActivity: uc.now(),
	}
	flow.Step = flow.initialStep()

	uc.mu.Lock()
	uc.flows[flow.ID] = flow
	uc.mu.Unlock()

	return flow, nil
}

func (uc *SubmissionUseCase) Get(flowID string) (*FlowState, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	flow, ok := uc.flows[flowID]
	if !ok {
		return nil, errors.NotFound("Flow", nil)
	}
	return flow, nil
}

// lockFlow looks up a flow and returns it with its own lock held. The
// existence re-check closes the window in which a concurrent Cancel or
// Finish removed the flow between the lookup and the lock.
func (uc *SubmissionUseCase) lockFlow(flowID string) (*FlowState, error) {
	flow, err := uc.Get(flowID)
	if err != nil {
		return nil, err
	}

	flow.mu.Lock()

	uc.mu.RLock()
	_, ok := uc.flows[flowID]
	uc.mu.RUnlock()
	if !ok {
		flow.mu.Unlock()
		return nil, errors.NotFound("Flow", nil)
	}

	return flow, nil
}

// Advance applies input to the current step, validates it locally, and
// moves the step pointer. When the next transition is the terminal
// submission, Advance also performs it; submission failures leave the
// pointer where it was so the user may retry. Only the flow's own lock
// is held across the payment saga, so one user's in-flight processor
// call never stalls other flows.
func (uc *SubmissionUseCase) Advance(ctx context.Context, flowID string, input StepInput) (*FlowState, error) {
	flow, err := uc.lockFlow(flowID)
	if err != nil {
		return nil, err
	}
	defer flow.mu.Unlock()

	if flow.IsTerminal() {
		return nil, errors.BadRequest("Flow is already complete", nil)
	}

	flow.LastActivity = uc.now()
	flow.Apply(input)

	if err := flow.Validate(uc.now()); err != nil {
		return nil, err
	}

	next := flowSuccessors[flow.Step]

	// The transition into a terminal step is the one that submits.
	if next == StepSubmitted || next == StepConfirmation {
		if err := uc.submit(ctx, flow); err != nil {
			return nil, err
		}
	}

	flow.Step = next
	return flow, nil
}

// Back moves to the immediately preceding step. All entered values are
// preserved.
func (uc *SubmissionUseCase) Back(flowID string) (*FlowState, error) {
	flow, err := uc.lockFlow(flowID)
	if err != nil {
		return nil, err
	}
	defer flow.mu.Unlock()

	prev, ok := flowPredecessors[flow.Step]
	if !ok {
		return nil, errors.BadRequest("Cannot navigate back from this step", nil)
	}

	flow.LastActivity = uc.now()
	flow.Step = prev
	return flow, nil
}

// Cancel discards all in-progress state. A cancelled flow cannot be
// resumed; the client starts over with a fresh instance. Cancel waits
// for any in-flight Advance on the same flow, so a submission never
// races a cancellation.
func (uc *SubmissionUseCase) Cancel(flowID string) error {
	flow, err := uc.lockFlow(flowID)
	if err != nil {
		return err
	}
	defer flow.mu.Unlock()

	uc.mu.Lock()
	delete(uc.flows, flowID)
	uc.mu.Unlock()
	return nil
}

// Finish acknowledges a terminal flow and releases it. The client's
// "Done" action maps here.
func (uc *SubmissionUseCase) Finish(flowID string) error {
	flow, err := uc.lockFlow(flowID)
	if err != nil {
		return err
	}
	defer flow.mu.Unlock()

	if !flow.IsTerminal() {
		return errors.BadRequest("Flow is still in progress", nil)
	}

	uc.mu.Lock()
	delete(uc.flows, flowID)
	uc.mu.Unlock()
	return nil
}

// UseSavedAddress prefills the address step from the user's address
// book. The values are copied into the flow; the saved row is not
// referenced afterward.
func (uc *SubmissionUseCase) UseSavedAddress(ctx context.Context, flowID, addressID string) (*FlowState, error) {
	flow, err := uc.lockFlow(flowID)
	if err != nil {
		return nil, err
	}
	defer flow.mu.Unlock()

	if flow.Step != StepAddressEntry {
		return nil, errors.BadRequest("Flow is not on the address step", nil)
	}

	address, err := uc.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != flow.UserID {
		return nil, errors.NotFound("Address", nil)
	}

	flow.Form.Street = address.Street
	flow.Form.Apt = address.Apt
	flow.Form.City = address.City
	flow.Form.State = address.State
	flow.Form.Zip = address.Zip
	flow.LastActivity = uc.now()

	return flow, nil
}

// submit performs the terminal submission for a flow. Free flows create
// the request directly; priced flows run the intent -> request ->
// confirm saga. Each flow submits at most once: a stored RequestID
// short-circuits every later attempt.
func (uc *SubmissionUseCase) submit(ctx context.Context, flow *FlowState) error {
	if flow.RequestID != "" {
		// The request row already exists; the only legal retry is a
		// failed payment confirmation.
		if flow.Option.PriceCents > 0 && flow.PaymentIntentID != "" {
			_, err := uc.requestUC.MarkPaid(ctx, flow.RequestID, flow.PaymentIntentID)
			return err
		}
		return errors.Conflict("Flow has already been submitted")
	}

	if flow.Option.PriceCents <= 0 {
		request, err := uc.requestUC.CreateRequest(ctx, flow.UserID, CreateRequestInput{
			ServiceID:   flow.Option.ID,
			ServiceType: flow.Option.ServiceType,
			FormData:    flow.formData(),
		})
		if err != nil {
			return err
		}
		flow.RequestID = request.ID
		return nil
	}

	return uc.submitPaid(ctx, flow)
}

// submitPaid runs the three-call payment saga. The sequence is not
// atomic: if the charge lands but request creation fails, a compensating
// orphaned-payment row is written for operator reconciliation and the
// step is surfaced as retryable.
func (uc *SubmissionUseCase) submitPaid(ctx context.Context, flow *FlowState) error {
	if flow.PaymentIntentID == "" {
		intent, err := uc.payments.CreateIntent(ctx, service.PaymentIntentRequest{
			AmountCents: flow.Option.PriceCents,
			ServiceID:   flow.Option.ID,
			ServiceType: flow.Option.ServiceType,
			UserID:      flow.UserID,
		})
		if err != nil {
			return err
		}
		// Keep the intent across retries so a second attempt never
		// opens a second charge.
		flow.PaymentIntentID = intent.ID
	}

	amount := flow.Option.PriceCents
	request, err := uc.requestUC.CreateRequest(ctx, flow.UserID, CreateRequestInput{
		ServiceID:   flow.Option.ID,
		ServiceType: flow.Option.ServiceType,
		FormData:    flow.formData(),
		AmountCents: &amount,
	})
	if err != nil {
		uc.compensate(ctx, flow, err)
		return err
	}
	flow.RequestID = request.ID

	if _, err := uc.requestUC.MarkPaid(ctx, request.ID, flow.PaymentIntentID); err != nil {
		// The request row exists at pending_payment; the client may
		// retry confirmation without creating a second request.
		logger.LogPaymentError(request.ID, "confirm", err)
		return err
	}

	return nil
}

// compensate records an orphaned payment when request creation failed
// after the processor already confirmed the charge.
func (uc *SubmissionUseCase) compensate(ctx context.Context, flow *FlowState, cause error) {
	intent, err := uc.payments.RetrieveIntent(ctx, flow.PaymentIntentID)
	if err != nil {
		logger.LogPaymentError(flow.PaymentIntentID, "retrieve", err)
		return
	}
	if intent.Status != "succeeded" {
		return
	}

	orphan := &entity.OrphanedPayment{
		PaymentIntentID: flow.PaymentIntentID,
		AmountCents:     intent.AmountCents,
		ServiceID:       flow.Option.ID,
		UserID:          flow.UserID,
		FailureReason:   cause.Error(),
	}
	if err := uc.orphanRepo.Create(ctx, orphan); err != nil {
		logger.LogPaymentError(flow.PaymentIntentID, "record-orphan", err)
	} else {
		logger.Warn("Orphaned payment recorded: intent=%s amount=%d", flow.PaymentIntentID, intent.AmountCents)
	}
}

// Cleanup drops flows with no activity for the given duration.
func (uc *SubmissionUseCase) Cleanup(maxIdle time.Duration) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	cutoff := uc.now().Add(-maxIdle)
	for id, flow := range uc.flows {
		if flow.LastActivity.Before(cutoff) {
			delete(uc.flows, id)
		}
	}
}

// StartCleanupRoutine expires abandoned flows periodically.
func (uc *SubmissionUseCase) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				uc.Cleanup(24 * time.Hour)
			case <-ctx.Done():
				return
			}
		}
	}()
}
