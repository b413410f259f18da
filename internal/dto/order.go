package dto

import (
	"time"

	"orderdesk/internal/domain"
)

type PlaceOrderRequest struct {
	ProductID     int    `json:"productId"`
	ExpectedDate  string `json:"expectedDate"`
	QuantityValue string `json:"quantityValue"`
	QuantityUnit  string `json:"quantityUnit"`
	Comments      string `json:"comments"`
}

type QuotationRequest struct {
	Message        string `json:"message"`
	AttachmentName string `json:"attachmentName,omitempty"`
}

type PaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// OrderScope selects which orders a list call returns.
type OrderScope string

const (
	ScopeAll   OrderScope = "all"
	ScopeOwner OrderScope = "owner"
	ScopeGroup OrderScope = "group"
)

type OrderFilter struct {
	Scope    OrderScope
	Statuses []domain.Status
}

type OrderDTO struct {
	ID            uint   `json:"id"`
	ProductName   string `json:"productName"`
	ClientEmail   string `json:"clientEmail"`
	Quantity      string `json:"quantity"`
	ExpectedDate  string `json:"expectedDate"`
	Comments      string `json:"comments"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	CreatedAt     string `json:"createdAt"`
	LastUpdated   string `json:"lastUpdated"`
}

func NewOrderDTO(o domain.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID,
		ProductName:   o.ProductName,
		ClientEmail:   o.UserEmail,
		Quantity:      o.Quantity,
		ExpectedDate:  o.ExpectedDate,
		Comments:      o.Comments,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt.Format(time.DateTime),
		LastUpdated:   o.LastUpdated.Format(time.DateTime),
	}
}

// LifecycleResult is what a mutating lifecycle operation hands back to the
// controller. Warning carries a notifier failure; the state change it
// refers to is already committed.
type LifecycleResult struct {
	Order   domain.Order
	Warning string
}

type LifecycleResponse struct {
	TraceID   string    `json:"traceId"`
	OrderID   uint      `json:"orderId"`
	Status    string    `json:"status"`
	Warning   string    `json:"warning,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
