package entity

// RequestStatus enumerates the service request lifecycle states.
type RequestStatus string

const (
	StatusPending        RequestStatus = "pending"
	StatusPendingPayment RequestStatus = "pending_payment"
	StatusPaid           RequestStatus = "paid"
	StatusSubmitted      RequestStatus = "submitted"
	StatusInvestigating  RequestStatus = "investigating"
	StatusInProgress     RequestStatus = "in_progress"
	StatusScheduled      RequestStatus = "scheduled"
	StatusResponded      RequestStatus = "responded"
	StatusCompleted      RequestStatus = "completed"
	StatusCancelled      RequestStatus = "cancelled"
)

var allStatuses = map[RequestStatus]bool{
	StatusPending:        true,
	StatusPendingPayment: true,
	StatusPaid:           true,
	StatusSubmitted:      true,
	StatusInvestigating:  true,
	StatusInProgress:     true,
	StatusScheduled:      true,
	StatusResponded:      true,
	StatusCompleted:      true,
	StatusCancelled:      true,
}

// operatorStatuses are the states an operator call may set directly.
// Payment-gated states (pending_payment, paid) are reachable only through
// the payment flow, and the initial states only through creation.
var operatorStatuses = map[RequestStatus]bool{
	StatusSubmitted:     true,
	StatusInvestigating: true,
	StatusInProgress:    true,
	StatusScheduled:     true,
	StatusResponded:     true,
	StatusCompleted:     true,
	StatusCancelled:     true,
}

func (s RequestStatus) IsValid() bool {
	return allStatuses[s]
}

// IsTerminal reports whether no further transition may leave s.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether an operator may move a request from
// one status to another. The graph is deliberately permissive: any
// non-terminal request may be routed to any operator-settable status.
func CanTransition(from, to RequestStatus) bool {
	if from.IsTerminal() {
		return false
	}
	return operatorStatuses[to]
}
