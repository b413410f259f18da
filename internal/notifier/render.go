package notifier

import (
	"fmt"

	"orderdesk/internal/domain"
)

// Renderer produces the notification subjects and bodies for every
// lifecycle event. The same rendered body is stored as the ledger entry, so
// what the client reads in the portal matches the email that was sent.
type Renderer struct {
	Company string
}

func NewRenderer(company string) *Renderer {
	return &Renderer{Company: company}
}

func (r *Renderer) NewOrder(o domain.Order) (subject, body string) {
	subject = "New Order Placed"
	body = fmt.Sprintf(`A new order has been placed:
Product Name: %s
Expected Date: %s
Quantity: %s
Comments: %s
Ordered by: %s
`, o.ProductName, o.ExpectedDate, o.Quantity, o.Comments, o.UserEmail)
	return subject, body
}

func (r *Renderer) Quotation(o domain.Order, message string) (subject, body string) {
	subject = fmt.Sprintf("Quotation for Order #%d: %s (%s)", o.ID, o.ProductName, o.Quantity)
	return subject, message
}

// QuotationLedgerSubject is the shorter subject stored in the ledger.
func (r *Renderer) QuotationLedgerSubject(o domain.Order) string {
	return fmt.Sprintf("Quotation for Order #%d", o.ID)
}

func (r *Renderer) Dispatched(o domain.Order) (subject, body string) {
	subject = fmt.Sprintf("Order Dispatched - Order #%d: %s", o.ID, o.ProductName)
	body = fmt.Sprintf(`Dear Customer,

Good news! Your order has been dispatched.

Order Details:
- Order ID: #%d
- Product: %s
- Quantity: %s

Your order is on its way and should arrive by the expected delivery date.
If you have any questions, please don't hesitate to contact us.

Best regards,
%s Team`, o.ID, o.ProductName, o.Quantity, r.Company)
	return subject, body
}

func (r *Renderer) Delivered(o domain.Order) (subject, body string) {
	subject = fmt.Sprintf("Order Delivered - Order #%d: %s", o.ID, o.ProductName)
	body = fmt.Sprintf(`Dear Customer,

Your order has been successfully delivered!

Order Details:
- Order ID: #%d
- Product: %s
- Quantity: %s

Thank you for choosing %s. We hope you're satisfied with your purchase.
If you have any questions or concerns about your order, please don't
hesitate to contact us.

Best regards,
%s Team`, o.ID, o.ProductName, o.Quantity, r.Company, r.Company)
	return subject, body
}

func (r *Renderer) Confirmed(o domain.Order) (subject, body string) {
	subject = fmt.Sprintf("Place Order Confirmed - Order #%d", o.ID)
	body = fmt.Sprintf("Your order '%s' (%s) has been confirmed successfully.", o.ProductName, o.Quantity)
	return subject, body
}

func (r *Renderer) ConfirmedAdmin(o domain.Order, quotation string) (subject, body string) {
	subject = fmt.Sprintf("New Order Confirmation - %s (%s)", o.ProductName, o.Quantity)
	body = fmt.Sprintf(`Hello Admin,

Client %s has confirmed an order.
The Order: %s
Order Quantity: %s
The Quotation sent: '%s'

- %s System`, o.UserEmail, o.ProductName, o.Quantity, quotation, r.Company)
	return subject, body
}

func (r *Renderer) Cancelled(o domain.Order) (subject, body string) {
	subject = "Order Cancelled"
	body = fmt.Sprintf("Your order '%s' (%s) has been cancelled by the client.", o.ProductName, o.Quantity)
	return subject, body
}

func (r *Renderer) CancelledAdmin(o domain.Order) (subject, body string) {
	subject = fmt.Sprintf("Order Cancelled - Order #%d: %s", o.ID, o.ProductName)
	body = fmt.Sprintf(`Client %s has cancelled their order.

Order Details:
- Order ID: #%d
- Product: %s
- Quantity: %s
`, o.UserEmail, o.ID, o.ProductName, o.Quantity)
	return subject, body
}
