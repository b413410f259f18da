package dto

import "orderdesk/internal/domain"

// TransitionOutcome is the result of applying a lifecycle event. When
// AlreadyApplied is set the order was already in the target status: nothing
// was written and no notification should be sent.
type TransitionOutcome struct {
	Order          domain.Order
	MessageID      uint
	AlreadyApplied bool
}
