package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orderdesk/internal/domain"
)

var testOrder = domain.Order{
	ID:          7,
	ProductName: "Steel Pipes",
	Quantity:    "100 kg",
	UserEmail:   "client@example.com",
}

func TestRenderer_QuotationSubjects(t *testing.T) {
	r := NewRenderer("OrderDesk")

	subject, body := r.Quotation(testOrder, "Price: 500 AED per unit")
	assert.Equal(t, "Quotation for Order #7: Steel Pipes (100 kg)", subject)
	assert.Equal(t, "Price: 500 AED per unit", body)

	assert.Equal(t, "Quotation for Order #7", r.QuotationLedgerSubject(testOrder))
}

func TestRenderer_Dispatched(t *testing.T) {
	r := NewRenderer("OrderDesk")

	subject, body := r.Dispatched(testOrder)
	assert.Equal(t, "Order Dispatched - Order #7: Steel Pipes", subject)
	assert.Contains(t, body, "Order ID: #7")
	assert.Contains(t, body, "Quantity: 100 kg")
	assert.Contains(t, body, "OrderDesk Team")
}

func TestRenderer_Delivered(t *testing.T) {
	r := NewRenderer("OrderDesk")

	subject, body := r.Delivered(testOrder)
	assert.Equal(t, "Order Delivered - Order #7: Steel Pipes", subject)
	assert.Contains(t, body, "successfully delivered")
	assert.Contains(t, body, "OrderDesk Team")
}

func TestRenderer_Confirmed(t *testing.T) {
	r := NewRenderer("OrderDesk")

	subject, body := r.Confirmed(testOrder)
	assert.Equal(t, "Place Order Confirmed - Order #7", subject)
	assert.Contains(t, body, "'Steel Pipes' (100 kg)")

	adminSubject, adminBody := r.ConfirmedAdmin(testOrder, "Price: 500 AED per unit")
	assert.Equal(t, "New Order Confirmation - Steel Pipes (100 kg)", adminSubject)
	assert.Contains(t, adminBody, "client@example.com")
	assert.Contains(t, adminBody, "Price: 500 AED per unit")
}

func TestRenderer_Cancelled(t *testing.T) {
	r := NewRenderer("OrderDesk")

	subject, body := r.Cancelled(testOrder)
	assert.Equal(t, "Order Cancelled", subject)
	assert.Contains(t, body, "'Steel Pipes' (100 kg)")

	adminSubject, adminBody := r.CancelledAdmin(testOrder)
	assert.Equal(t, "Order Cancelled - Order #7: Steel Pipes", adminSubject)
	assert.Contains(t, adminBody, "client@example.com")
}

func TestRenderer_NewOrder(t *testing.T) {
	r := NewRenderer("OrderDesk")

	order := testOrder
	order.ExpectedDate = "2026-09-15"
	order.Comments = "urgent"

	subject, body := r.NewOrder(order)
	assert.Equal(t, "New Order Placed", subject)
	assert.Contains(t, body, "Product Name: Steel Pipes")
	assert.Contains(t, body, "Expected Date: 2026-09-15")
	assert.Contains(t, body, "Ordered by: client@example.com")
}
