package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	"orderdesk/internal/testutil"
)

// Unit Tests

func TestNewMySQLReportingRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLReportingRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func seedReportOrder(t *testing.T, db *sql.DB, product, email string, status domain.Status, payment domain.PaymentStatus, createdAt time.Time) {
	seedReportOrderTouched(t, db, product, email, status, payment, createdAt, createdAt)
}

func seedReportOrderTouched(t *testing.T, db *sql.DB, product, email string, status domain.Status, payment domain.PaymentStatus, createdAt, lastUpdated time.Time) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO orders (product_name, expected_date, quantity, comments, user_email,
		                    status, payment_status, created_at, last_updated)
		VALUES (?, '2026-09-15', '10 pcs', '', ?, ?, ?, ?, ?)
	`, product, email, string(status), string(payment), createdAt, lastUpdated)
	require.NoError(t, err)
}

func TestReportingRepository_CountOrders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReportingRepository(db)

	now := time.Now().Truncate(time.Second)
	old := now.AddDate(0, 0, -30)

	seedReportOrder(t, db, "Steel Pipes", "a@example.com", domain.StatusInquiryReceived, domain.PaymentUnpaid, now)
	seedReportOrder(t, db, "Steel Pipes", "a@example.com", domain.StatusQuoteSent, domain.PaymentUnpaid, now)
	seedReportOrder(t, db, "Cement", "b@example.com", domain.StatusOrderPlaced, domain.PaymentUnpaid, now)
	seedReportOrder(t, db, "Cement", "a@example.com", domain.StatusDispatched, domain.PaymentPaid, old)
	seedReportOrder(t, db, "Rebar", "a@example.com", domain.StatusDelivered, domain.PaymentUnpaid, old)

	counts, err := repo.CountOrders(context.Background(), now.AddDate(0, 0, -7))
	require.NoError(t, err)

	assert.Equal(t, 3, counts.OrdersThisWeek)
	assert.Equal(t, 2, counts.UnplacedOrders)
	assert.Equal(t, 2, counts.PendingOrders)
	assert.Equal(t, 1, counts.DeliveredCount)
	assert.Equal(t, 1, counts.DispatchedCount)
	// Unpaid and shipped: the placed Cement and the delivered Rebar.
	assert.Equal(t, 2, counts.UnpaidShipped)
	assert.Equal(t, "Steel Pipes", counts.MostInquiredItem)
	assert.Equal(t, "a@example.com", counts.MostActiveClient)
}

func TestReportingRepository_CountOrders_WeekTileKeysOnLastUpdated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReportingRepository(db)

	now := time.Now().Truncate(time.Second)
	old := now.AddDate(0, 0, -30)

	// Placed a month ago, dispatched yesterday: recent activity, counts.
	seedReportOrderTouched(t, db, "Steel Pipes", "a@example.com", domain.StatusDispatched, domain.PaymentUnpaid,
		old, now.AddDate(0, 0, -1))
	// Untouched for a month: does not count.
	seedReportOrderTouched(t, db, "Cement", "b@example.com", domain.StatusQuoteSent, domain.PaymentUnpaid,
		old, old)

	counts, err := repo.CountOrders(context.Background(), now.AddDate(0, 0, -7))
	require.NoError(t, err)

	assert.Equal(t, 1, counts.OrdersThisWeek)
}

func TestReportingRepository_CountOrders_EmptyStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReportingRepository(db)

	counts, err := repo.CountOrders(context.Background(), time.Now().AddDate(0, 0, -7))
	require.NoError(t, err)

	assert.Zero(t, counts.OrdersThisWeek)
	assert.Empty(t, counts.MostInquiredItem)
	assert.Empty(t, counts.MostActiveClient)
}

func TestReportingRepository_InquiredItems_TieBreaksOnName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReportingRepository(db)

	now := time.Now().Truncate(time.Second)
	seedReportOrder(t, db, "Cement", "a@example.com", domain.StatusInquiryReceived, domain.PaymentUnpaid, now)
	seedReportOrder(t, db, "Cement", "b@example.com", domain.StatusDelivered, domain.PaymentPaid, now)
	seedReportOrder(t, db, "Steel Pipes", "a@example.com", domain.StatusQuoteSent, domain.PaymentUnpaid, now)
	seedReportOrder(t, db, "Steel Pipes", "b@example.com", domain.StatusCancelled, domain.PaymentUnpaid, now)

	items, err := repo.InquiredItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Equal counts resolve alphabetically.
	assert.Equal(t, "Cement", items[0].Key)
	assert.Equal(t, 2, items[0].Count)
	assert.Equal(t, "Steel Pipes", items[1].Key)
}

func TestReportingRepository_DeliveredByCategory_JoinsOnProductName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReportingRepository(db)

	_, err := db.Exec(`INSERT INTO products (product_name, category, stock_status) VALUES
		('Steel Pipes', 'Metals', 'in_stock'),
		('Cement', 'Building', 'in_stock')`)
	require.NoError(t, err)

	now := time.Now().Truncate(time.Second)
	seedReportOrder(t, db, "steel pipes", "a@example.com", domain.StatusDelivered, domain.PaymentPaid, now)
	seedReportOrder(t, db, "Renamed Widget", "b@example.com", domain.StatusDelivered, domain.PaymentPaid, now)
	seedReportOrder(t, db, "Cement", "a@example.com", domain.StatusDispatched, domain.PaymentUnpaid, now)

	rows, err := repo.DeliveredByCategory(context.Background())
	require.NoError(t, err)

	// Case-insensitive name match joins; the renamed product drops out.
	require.Len(t, rows, 1)
	assert.Equal(t, "Metals", rows[0].Category)
	assert.Equal(t, "steel pipes", rows[0].Product)
}

func TestReportingRepository_Timeline(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReportingRepository(db)

	seedReportOrder(t, db, "Steel Pipes", "a@example.com", domain.StatusInquiryReceived, domain.PaymentUnpaid,
		time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC))
	seedReportOrder(t, db, "Cement", "b@example.com", domain.StatusQuoteSent, domain.PaymentUnpaid,
		time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC))
	// Before the cutoff, must not appear.
	seedReportOrder(t, db, "Rebar", "a@example.com", domain.StatusDelivered, domain.PaymentPaid,
		time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))

	months, err := repo.TimelineMonths(context.Background(), "2025-10-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12", "2025-11"}, months)

	orders, err := repo.TimelineOrders(context.Background(), "2025-11")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Steel Pipes", orders[0].ProductName)
}

func TestReportingRepository_PaymentStatusList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLReportingRepository(db)

	now := time.Now().Truncate(time.Second)
	seedReportOrder(t, db, "Steel Pipes", "a@example.com", domain.StatusInquiryReceived, domain.PaymentUnpaid, now)
	seedReportOrder(t, db, "Cement", "b@example.com", domain.StatusOrderPlaced, domain.PaymentUnpaid, now)
	seedReportOrder(t, db, "Rebar", "a@example.com", domain.StatusDelivered, domain.PaymentPaid, now)

	rows, err := repo.PaymentStatusList(context.Background())
	require.NoError(t, err)

	// Only shipped orders carry a payment row; the open inquiry does not.
	assert.Len(t, rows, 2)
}
