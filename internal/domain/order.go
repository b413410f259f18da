package domain

import "time"

// Status is the lifecycle position of an order. Transitions happen only
// through the transition service; nothing else writes the status column.
type Status string

const (
	StatusInquiryReceived Status = "inquiry received"
	StatusQuoteSent       Status = "quote sent"
	StatusOrderPlaced     Status = "order placed"
	StatusDispatched      Status = "dispatched"
	StatusDelivered       Status = "delivered"
	StatusCancelled       Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusInquiryReceived, StatusQuoteSent, StatusOrderPlaced,
		StatusDispatched, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo enumerates the legal edges of the lifecycle. Cancellation
// is reachable up to and including "order placed"; once dispatched an order
// can only be delivered.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusInquiryReceived:
		return next == StatusQuoteSent || next == StatusCancelled
	case StatusQuoteSent:
		return next == StatusOrderPlaced || next == StatusCancelled
	case StatusOrderPlaced:
		return next == StatusDispatched || next == StatusCancelled
	case StatusDispatched:
		return next == StatusDelivered
	default:
		return false
	}
}

// Event is an actor action that moves an order along the lifecycle.
type Event string

const (
	EventSendQuotation Event = "send quotation"
	EventFinalize      Event = "finalize"
	EventCancel        Event = "cancel"
	EventDispatch      Event = "dispatch"
	EventMarkDelivered Event = "mark delivered"
)

// Target returns the status an event moves an order into. An event is legal
// from a given status exactly when CanTransitionTo(Target()) holds.
func (e Event) Target() Status {
	switch e {
	case EventSendQuotation:
		return StatusQuoteSent
	case EventFinalize:
		return StatusOrderPlaced
	case EventCancel:
		return StatusCancelled
	case EventDispatch:
		return StatusDispatched
	case EventMarkDelivered:
		return StatusDelivered
	default:
		return ""
	}
}

// PaymentStatus is an axis independent of the lifecycle, flipped only by an
// explicit admin action.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

func (p PaymentStatus) IsValid() bool {
	return p == PaymentPaid || p == PaymentUnpaid
}

// Order is one inquiry/purchase cycle. ProductName is a denormalized copy
// taken at order time so the record survives later catalog renames.
type Order struct {
	ID            uint
	ProductName   string
	ExpectedDate  string
	Quantity      string
	Comments      string
	UserEmail     string
	Status        Status
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	LastUpdated   time.Time
}
