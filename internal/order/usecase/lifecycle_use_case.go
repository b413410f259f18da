package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/auth"
	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	"orderdesk/internal/errors"
	"orderdesk/internal/notifier"
	"orderdesk/internal/order/service"
)

type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, value domain.PaymentStatus) error
	ListByOwner(ctx context.Context, email string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByStatuses(ctx context.Context, statuses []domain.Status) ([]domain.Order, error)
	Delete(ctx context.Context, id uint) error
}

type MessageFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.Message, error)
}

type TransitionService interface {
	Apply(ctx context.Context, orderID uint, event domain.Event, compose service.ComposeMessage) (*dto.TransitionOutcome, error)
}

type CatalogStore interface {
	ResolveProduct(ctx context.Context, id int) (*domain.Product, error)
}

// deliveryWarning is what callers see when a notification could not be
// delivered. The state change it refers to is committed and stands.
const deliveryWarning = "state saved, but the notification could not be delivered"

// LifecycleUseCase drives every order mutation: placement, the lifecycle
// transitions, the payment flag, and deletion. All pre-validation happens
// here, outside the transition transaction; all notification happens here,
// after it.
type LifecycleUseCase struct {
	orders      OrderRepository
	messages    MessageFinder
	transitions TransitionService
	catalog     CatalogStore
	notifier    notifier.Notifier
	render      *notifier.Renderer
	adminEmail  string
	logger      *zap.Logger
	now         func() time.Time
}

func NewLifecycleUseCase(
	orders OrderRepository,
	messages MessageFinder,
	transitions TransitionService,
	catalog CatalogStore,
	sender notifier.Notifier,
	render *notifier.Renderer,
	adminEmail string,
	logger *zap.Logger,
	loc *time.Location,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		orders:      orders,
		messages:    messages,
		transitions: transitions,
		catalog:     catalog,
		notifier:    sender,
		render:      render,
		adminEmail:  adminEmail,
		logger:      logger,
		now:         func() time.Time { return time.Now().In(loc) },
	}
}

// PlaceOrder opens a new inquiry. Only in-stock products are orderable.
// The product name is copied into the order so the record survives catalog
// renames; the admin is notified afterwards, best-effort.
func (uc *LifecycleUseCase) PlaceOrder(ctx context.Context, actor auth.Actor, req dto.PlaceOrderRequest) (*dto.LifecycleResult, error) {
	if err := validatePlaceOrder(req); err != nil {
		return nil, err
	}

	product, err := uc.catalog.ResolveProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.InStock() {
		return nil, errors.NewValidationError("product is out of stock", errors.ValidationDetail{
			Field:   "productId",
			Message: "product is currently out of stock",
		})
	}

	now := uc.now()
	order := domain.Order{
		ProductName:   product.Name,
		ExpectedDate:  strings.TrimSpace(req.ExpectedDate),
		Quantity:      strings.TrimSpace(req.QuantityValue) + " " + strings.TrimSpace(req.QuantityUnit),
		Comments:      req.Comments,
		UserEmail:     actor.Email,
		Status:        domain.StatusInquiryReceived,
		PaymentStatus: domain.PaymentUnpaid,
		CreatedAt:     now,
		LastUpdated:   now,
	}

	id, err := uc.orders.Insert(ctx, order)
	if err != nil {
		return nil, errors.NewInternalError("inserting order", err)
	}
	order.ID = id

	uc.logger.Info("order placed",
		zap.Uint("orderId", id),
		zap.String("client", actor.Email),
		zap.String("product", product.Name),
	)

	subject, body := uc.render.NewOrder(order)
	warning := uc.notify(ctx, uc.adminEmail, subject, body)

	return &dto.LifecycleResult{Order: order, Warning: warning}, nil
}

// SendQuotation moves an inquiry to "quote sent" and records the quote body
// (plus optional attachment name) as the client-facing ledger entry.
func (uc *LifecycleUseCase) SendQuotation(ctx context.Context, actor auth.Actor, orderID uint, req dto.QuotationRequest) (*dto.LifecycleResult, error) {
	if !actor.IsAdmin {
		return nil, errors.NewForbiddenError("admin access required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.NewValidationError("message is required", errors.ValidationDetail{
			Field:   "message",
			Message: "quotation message must not be empty",
		})
	}

	var attachment *string
	if name := strings.TrimSpace(req.AttachmentName); name != "" {
		attachment = &name
	}

	outcome, err := uc.transitions.Apply(ctx, orderID, domain.EventSendQuotation, func(o domain.Order) domain.Message {
		id := o.ID
		return domain.Message{
			OrderID:        &id,
			UserEmail:      o.UserEmail,
			Subject:        uc.render.QuotationLedgerSubject(o),
			Body:           req.Message,
			AttachmentName: attachment,
			OrderName:      o.ProductName,
			OrderQuantity:  o.Quantity,
		}
	})
	if err != nil {
		return nil, err
	}

	result := &dto.LifecycleResult{Order: outcome.Order}
	if outcome.AlreadyApplied {
		return result, nil
	}

	subject, body := uc.render.Quotation(outcome.Order, req.Message)
	result.Warning = uc.notify(ctx, outcome.Order.UserEmail, subject, body)
	return result, nil
}

// Finalize is the client confirming a quoted order into "order placed". The
// message id identifies the quotation being accepted.
func (uc *LifecycleUseCase) Finalize(ctx context.Context, actor auth.Actor, messageID uint) (*dto.LifecycleResult, error) {
	msg, err := uc.ownedMessage(ctx, actor, messageID)
	if err != nil {
		return nil, err
	}

	outcome, err := uc.transitions.Apply(ctx, *msg.OrderID, domain.EventFinalize, func(o domain.Order) domain.Message {
		id := o.ID
		subject, body := uc.render.Confirmed(o)
		return domain.Message{
			OrderID:       &id,
			UserEmail:     o.UserEmail,
			Subject:       subject,
			Body:          body,
			OrderName:     o.ProductName,
			OrderQuantity: o.Quantity,
		}
	})
	if err != nil {
		return nil, err
	}

	result := &dto.LifecycleResult{Order: outcome.Order}
	if outcome.AlreadyApplied {
		return result, nil
	}

	subject, body := uc.render.ConfirmedAdmin(outcome.Order, msg.Body)
	result.Warning = uc.notify(ctx, uc.adminEmail, subject, body)
	return result, nil
}

// Cancel is a client action, legal until the order is dispatched. The
// ledger entry goes to the owner; the admin is notified.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, actor auth.Actor, messageID uint) (*dto.LifecycleResult, error) {
	msg, err := uc.ownedMessage(ctx, actor, messageID)
	if err != nil {
		return nil, err
	}

	return uc.cancel(ctx, *msg.OrderID)
}

// CancelOrder cancels by order id, for orders with no ledger entry yet: an
// open inquiry has no quotation message to cancel through.
func (uc *LifecycleUseCase) CancelOrder(ctx context.Context, actor auth.Actor, orderID uint) (*dto.LifecycleResult, error) {
	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && order.UserEmail != actor.Email {
		return nil, errors.NewForbiddenError("order belongs to another client")
	}

	return uc.cancel(ctx, orderID)
}

func (uc *LifecycleUseCase) cancel(ctx context.Context, orderID uint) (*dto.LifecycleResult, error) {
	outcome, err := uc.transitions.Apply(ctx, orderID, domain.EventCancel, func(o domain.Order) domain.Message {
		id := o.ID
		subject, body := uc.render.Cancelled(o)
		return domain.Message{
			OrderID:       &id,
			UserEmail:     o.UserEmail,
			Subject:       subject,
			Body:          body,
			OrderName:     o.ProductName,
			OrderQuantity: o.Quantity,
		}
	})
	if err != nil {
		return nil, err
	}

	result := &dto.LifecycleResult{Order: outcome.Order}
	if outcome.AlreadyApplied {
		return result, nil
	}

	subject, body := uc.render.CancelledAdmin(outcome.Order)
	result.Warning = uc.notify(ctx, uc.adminEmail, subject, body)
	return result, nil
}

func (uc *LifecycleUseCase) Dispatch(ctx context.Context, actor auth.Actor, orderID uint) (*dto.LifecycleResult, error) {
	if !actor.IsAdmin {
		return nil, errors.NewForbiddenError("admin access required")
	}

	return uc.adminTransition(ctx, orderID, domain.EventDispatch, uc.render.Dispatched)
}

func (uc *LifecycleUseCase) MarkDelivered(ctx context.Context, actor auth.Actor, orderID uint) (*dto.LifecycleResult, error) {
	if !actor.IsAdmin {
		return nil, errors.NewForbiddenError("admin access required")
	}

	return uc.adminTransition(ctx, orderID, domain.EventMarkDelivered, uc.render.Delivered)
}

// adminTransition covers dispatch and delivery: the rendered email body is
// also the ledger entry, so portal and inbox show the same text.
func (uc *LifecycleUseCase) adminTransition(ctx context.Context, orderID uint, event domain.Event, render func(domain.Order) (string, string)) (*dto.LifecycleResult, error) {
	outcome, err := uc.transitions.Apply(ctx, orderID, event, func(o domain.Order) domain.Message {
		id := o.ID
		subject, body := render(o)
		return domain.Message{
			OrderID:       &id,
			UserEmail:     o.UserEmail,
			Subject:       subject,
			Body:          body,
			OrderName:     o.ProductName,
			OrderQuantity: o.Quantity,
		}
	})
	if err != nil {
		return nil, err
	}

	result := &dto.LifecycleResult{Order: outcome.Order}
	if outcome.AlreadyApplied {
		return result, nil
	}

	subject, body := render(outcome.Order)
	result.Warning = uc.notify(ctx, outcome.Order.UserEmail, subject, body)
	return result, nil
}

// UpdatePaymentStatus flips the paid/unpaid flag, independent of the
// lifecycle position.
func (uc *LifecycleUseCase) UpdatePaymentStatus(ctx context.Context, actor auth.Actor, orderID uint, value string) error {
	if !actor.IsAdmin {
		return errors.NewForbiddenError("admin access required")
	}

	status := domain.PaymentStatus(value)
	if !status.IsValid() {
		return errors.NewValidationError("invalid payment status", errors.ValidationDetail{
			Field:   "paymentStatus",
			Message: "paymentStatus must be one of: paid, unpaid",
		})
	}

	if _, err := uc.orders.FindByID(ctx, orderID); err != nil {
		return err
	}

	if err := uc.orders.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		return errors.NewInternalError("updating payment status", err)
	}

	uc.logger.Info("payment status updated",
		zap.Uint("orderId", orderID),
		zap.String("paymentStatus", value),
	)
	return nil
}

// ListOrders scopes the result to the caller: clients always see their own
// orders, admins can list everything or a status group.
func (uc *LifecycleUseCase) ListOrders(ctx context.Context, actor auth.Actor, filter dto.OrderFilter) ([]domain.Order, error) {
	if !actor.IsAdmin {
		return uc.orders.ListByOwner(ctx, actor.Email)
	}

	switch filter.Scope {
	case dto.ScopeOwner:
		return uc.orders.ListByOwner(ctx, actor.Email)
	case dto.ScopeGroup:
		return uc.orders.ListByStatuses(ctx, filter.Statuses)
	default:
		return uc.orders.ListAll(ctx)
	}
}

func (uc *LifecycleUseCase) DeleteOrder(ctx context.Context, actor auth.Actor, orderID uint) error {
	if !actor.IsAdmin {
		return errors.NewForbiddenError("admin access required")
	}

	if err := uc.orders.Delete(ctx, orderID); err != nil {
		return err
	}

	uc.logger.Info("order deleted", zap.Uint("orderId", orderID))
	return nil
}

// ownedMessage resolves a message id to an entry owned by the caller whose
// order still exists.
func (uc *LifecycleUseCase) ownedMessage(ctx context.Context, actor auth.Actor, messageID uint) (*domain.Message, error) {
	msg, err := uc.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if msg.UserEmail != actor.Email {
		return nil, errors.NewForbiddenError("message belongs to another client")
	}

	if msg.OrderID == nil {
		return nil, errors.NewNotFoundError("the order for this message no longer exists")
	}

	return msg, nil
}

// notify attempts delivery after the state change is committed. Failure
// surfaces as a warning only, never as an error.
func (uc *LifecycleUseCase) notify(ctx context.Context, to, subject, body string) string {
	if to == "" {
		return ""
	}

	if err := uc.notifier.Send(ctx, to, subject, body); err != nil {
		uc.logger.Warn("notification failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return deliveryWarning
	}

	return ""
}

func validatePlaceOrder(req dto.PlaceOrderRequest) error {
	var details []errors.ValidationDetail

	if req.ProductID <= 0 {
		details = append(details, errors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}
	if strings.TrimSpace(req.ExpectedDate) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "expectedDate",
			Message: "expectedDate is required",
		})
	}
	if strings.TrimSpace(req.QuantityValue) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "quantityValue",
			Message: "quantityValue is required",
		})
	}
	if strings.TrimSpace(req.QuantityUnit) == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "quantityUnit",
			Message: "quantityUnit is required",
		})
	}

	if len(details) > 0 {
		return errors.NewValidationError("validation failed", details...)
	}

	return nil
}
