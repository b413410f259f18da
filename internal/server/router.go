package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"orderdesk/internal/directory"
	messagectrl "orderdesk/internal/message/controller"
	orderctrl "orderdesk/internal/order/controller"
	reportingctrl "orderdesk/internal/reporting/controller"
)

func NewRouter(
	orders *orderctrl.OrderController,
	messages *messagectrl.MessageController,
	reports *reportingctrl.ReportingController,
	dir directory.Directory,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(logger))
	r.Use(Identity(dir, logger))

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orders.PlaceOrder)
		r.Get("/", orders.ListOrders)
		r.Post("/{orderID}/quotation", orders.SendQuotation)
		r.Post("/{orderID}/dispatch", orders.Dispatch)
		r.Post("/{orderID}/delivered", orders.MarkDelivered)
		r.Post("/{orderID}/cancel", orders.CancelOrder)
		r.Post("/{orderID}/payment-status", orders.UpdatePaymentStatus)
		r.Delete("/{orderID}", orders.DeleteOrder)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Get("/", messages.ListMessages)
		r.Get("/unread-count", messages.UnreadCount)
		r.Post("/{messageID}/finalize", orders.Finalize)
		r.Post("/{messageID}/cancel", orders.Cancel)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", reports.Dashboard)
		r.Get("/orders/{group}", reports.OrdersByGroup)
		r.Get("/inquired-items", reports.InquiredItems)
		r.Get("/clients", reports.ClientBreakdown)
		r.Get("/delivered-by-category", reports.DeliveredByCategory)
		r.Get("/timeline/months", reports.TimelineMonths)
		r.Get("/timeline/orders/{month}", reports.TimelineOrders)
		r.Get("/payment-status", reports.PaymentStatusList)
	})

	return r
}
