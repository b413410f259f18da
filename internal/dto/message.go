package dto

import (
	"time"

	"orderdesk/internal/domain"
)

// InboxEntry is a ledger entry joined with the live status of its order.
// OrderStatus is empty for entries whose order no longer exists.
type InboxEntry struct {
	ID             uint      `json:"id"`
	OrderID        *uint     `json:"orderId,omitempty"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	AttachmentName *string   `json:"attachmentName,omitempty"`
	OrderName      string    `json:"orderName"`
	OrderQuantity  string    `json:"orderQuantity"`
	CreatedAt      time.Time `json:"createdAt"`
	IsRead         bool      `json:"isRead"`
	OrderStatus    string    `json:"orderStatus,omitempty"`
}

func NewInboxEntry(m domain.Message, orderStatus string) InboxEntry {
	return InboxEntry{
		ID:             m.ID,
		OrderID:        m.OrderID,
		Subject:        m.Subject,
		Body:           m.Body,
		AttachmentName: m.AttachmentName,
		OrderName:      m.OrderName,
		OrderQuantity:  m.OrderQuantity,
		CreatedAt:      m.CreatedAt,
		IsRead:         m.IsRead,
		OrderStatus:    orderStatus,
	}
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
