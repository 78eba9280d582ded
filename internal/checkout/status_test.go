package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo_ForwardPath(t *testing.T) {
	assert.True(t, CanTransitionTo(StatusUnauthenticated, StatusShipping))
	assert.True(t, CanTransitionTo(StatusShipping, StatusPayment))
	assert.True(t, CanTransitionTo(StatusPayment, StatusReview))
	assert.True(t, CanTransitionTo(StatusReview, StatusPlacing))
	assert.True(t, CanTransitionTo(StatusPlacing, StatusConfirmed))
}

func TestCanTransitionTo_BackwardMoves(t *testing.T) {
	assert.True(t, CanTransitionTo(StatusPayment, StatusShipping))
	assert.True(t, CanTransitionTo(StatusReview, StatusPayment))
	assert.True(t, CanTransitionTo(StatusPlacing, StatusReview), "failed submission falls back to review")

	assert.False(t, CanTransitionTo(StatusShipping, StatusUnauthenticated))
	assert.False(t, CanTransitionTo(StatusConfirmed, StatusReview))
}

func TestCanTransitionTo_NoSkipping(t *testing.T) {
	assert.False(t, CanTransitionTo(StatusUnauthenticated, StatusPayment))
	assert.False(t, CanTransitionTo(StatusShipping, StatusReview))
	assert.False(t, CanTransitionTo(StatusPayment, StatusPlacing))
	assert.False(t, CanTransitionTo(StatusShipping, StatusConfirmed))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusConfirmed.IsTerminal())

	for _, s := range []Status{StatusUnauthenticated, StatusShipping, StatusPayment, StatusReview, StatusPlacing} {
		assert.False(t, s.IsTerminal(), "%s must not be terminal", s)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "SHIPPING", StatusShipping.String())
	assert.Equal(t, "CONFIRMED", StatusConfirmed.String())
}
