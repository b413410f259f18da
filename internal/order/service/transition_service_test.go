package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
	messagerepo "orderdesk/internal/message/repository"
	orderrepo "orderdesk/internal/order/repository"
	"orderdesk/internal/testutil"
)

func composeTestMessage(o domain.Order) domain.Message {
	id := o.ID
	return domain.Message{
		OrderID:       &id,
		UserEmail:     o.UserEmail,
		Subject:       "Quotation for Order #1",
		Body:          "test quotation",
		OrderName:     o.ProductName,
		OrderQuantity: o.Quantity,
	}
}

func setupTransitionTest(t *testing.T) (*TransitionService, *orderrepo.MySQLOrderRepository, *messagerepo.MySQLMessageRepository, func()) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)

	orders := orderrepo.NewMySQLOrderRepository(db)
	messages := messagerepo.NewMySQLMessageRepository(db)
	svc := NewTransitionService(db, orders, messages, zap.NewNop(), time.UTC)

	return svc, orders, messages, func() { testutil.CleanupTestDB(t, db) }
}

func seedOrder(t *testing.T, orders *orderrepo.MySQLOrderRepository, status domain.Status) uint {
	t.Helper()

	now := time.Now().Truncate(time.Second)
	id, err := orders.Insert(context.Background(), domain.Order{
		ProductName:   "Steel Pipes",
		ExpectedDate:  "2026-09-15",
		Quantity:      "100 kg",
		UserEmail:     "client@example.com",
		Status:        status,
		PaymentStatus: domain.PaymentUnpaid,
		CreatedAt:     now,
		LastUpdated:   now,
	})
	require.NoError(t, err)
	return id
}

func TestTransitionService_Apply_LegalTransition(t *testing.T) {
	svc, orders, messages, cleanup := setupTransitionTest(t)
	defer cleanup()

	id := seedOrder(t, orders, domain.StatusInquiryReceived)

	outcome, err := svc.Apply(context.Background(), id, domain.EventSendQuotation, composeTestMessage)
	require.NoError(t, err)
	assert.False(t, outcome.AlreadyApplied)
	assert.Equal(t, domain.StatusQuoteSent, outcome.Order.Status)
	assert.NotZero(t, outcome.MessageID)

	// Status and ledger entry both landed.
	order, err := orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoteSent, order.Status)

	msg, err := messages.FindByID(context.Background(), outcome.MessageID)
	require.NoError(t, err)
	require.NotNil(t, msg.OrderID)
	assert.Equal(t, id, *msg.OrderID)
	assert.Equal(t, "test quotation", msg.Body)
	assert.False(t, msg.IsRead)
}

func TestTransitionService_Apply_IdempotentRepeat(t *testing.T) {
	svc, orders, messages, cleanup := setupTransitionTest(t)
	defer cleanup()

	id := seedOrder(t, orders, domain.StatusInquiryReceived)

	first, err := svc.Apply(context.Background(), id, domain.EventSendQuotation, composeTestMessage)
	require.NoError(t, err)
	require.False(t, first.AlreadyApplied)

	second, err := svc.Apply(context.Background(), id, domain.EventSendQuotation, composeTestMessage)
	require.NoError(t, err)
	assert.True(t, second.AlreadyApplied)
	assert.Equal(t, domain.StatusQuoteSent, second.Order.Status)

	// No duplicate ledger entry.
	count, err := messages.UnreadCount(context.Background(), "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTransitionService_Apply_IllegalTransition(t *testing.T) {
	svc, orders, _, cleanup := setupTransitionTest(t)
	defer cleanup()

	id := seedOrder(t, orders, domain.StatusInquiryReceived)

	// Dispatch straight from inquiry is not a lifecycle edge.
	_, err := svc.Apply(context.Background(), id, domain.EventDispatch, composeTestMessage)
	require.Error(t, err)

	ite, ok := errors.IsInvalidTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, string(domain.StatusInquiryReceived), ite.From)

	// Nothing was written.
	order, err := orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInquiryReceived, order.Status)
}

func TestTransitionService_Apply_CancelAfterDispatchRejected(t *testing.T) {
	svc, orders, _, cleanup := setupTransitionTest(t)
	defer cleanup()

	id := seedOrder(t, orders, domain.StatusDispatched)

	_, err := svc.Apply(context.Background(), id, domain.EventCancel, composeTestMessage)
	_, ok := errors.IsInvalidTransitionError(err)
	assert.True(t, ok)
}

func TestTransitionService_Apply_UnknownOrder(t *testing.T) {
	svc, _, _, cleanup := setupTransitionTest(t)
	defer cleanup()

	_, err := svc.Apply(context.Background(), 9999, domain.EventSendQuotation, composeTestMessage)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestTransitionService_Apply_TerminalStateRejectsEverything(t *testing.T) {
	svc, orders, _, cleanup := setupTransitionTest(t)
	defer cleanup()

	id := seedOrder(t, orders, domain.StatusDelivered)

	for _, event := range []domain.Event{domain.EventSendQuotation, domain.EventFinalize, domain.EventDispatch} {
		_, err := svc.Apply(context.Background(), id, event, composeTestMessage)
		_, ok := errors.IsInvalidTransitionError(err)
		assert.True(t, ok, "event %q must be rejected from delivered", event)
	}
}
