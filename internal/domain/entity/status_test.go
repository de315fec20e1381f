package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValidity(t *testing.T) {
	assert.True(t, StatusPendingPayment.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, RequestStatus("archived").IsValid())
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPaid.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		want     bool
	}{
		{StatusPending, StatusInvestigating, true},
		{StatusSubmitted, StatusScheduled, true},
		{StatusPaid, StatusScheduled, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInvestigating, StatusCancelled, true},

		// Terminal states are final.
		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusSubmitted, false},

		// Payment-gated states only come from the payment flow.
		{StatusSubmitted, StatusPaid, false},
		{StatusPending, StatusPendingPayment, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
