package domain

import "time"

// Message is one ledger entry, written in the same transaction as the
// status change it records. OrderID is nil only for synthetic entries that
// outlive their order; OrderName/OrderQuantity are frozen copies kept so an
// entry stays readable after its order is hard-deleted.
type Message struct {
	ID             uint
	OrderID        *uint
	UserEmail      string
	Subject        string
	Body           string
	AttachmentName *string
	OrderName      string
	OrderQuantity  string
	CreatedAt      time.Time
	IsRead         bool
}
