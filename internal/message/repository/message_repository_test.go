package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
	"orderdesk/internal/testutil"
)

// Unit Tests

func TestNewMySQLMessageRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLMessageRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func insertTestMessage(t *testing.T, db *sql.DB, repo *MySQLMessageRepository, orderID *uint, email string) uint {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	id, err := repo.Insert(context.Background(), tx, domain.Message{
		OrderID:       orderID,
		UserEmail:     email,
		Subject:       "Quotation for Order #1",
		Body:          "test body",
		OrderName:     "Steel Pipes",
		OrderQuantity: "100 kg",
		CreatedAt:     time.Now().Truncate(time.Second),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	return id
}

func seedOrder(t *testing.T, db *sql.DB, status domain.Status) uint {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO orders (product_name, expected_date, quantity, user_email,
		                    status, payment_status, created_at, last_updated)
		VALUES ('Steel Pipes', '2026-09-15', '100 kg', 'client@example.com', ?, 'unpaid', NOW(), NOW())
	`, string(status))
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func TestMessageRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMessageRepository(db)
	orderID := seedOrder(t, db, domain.StatusQuoteSent)
	id := insertTestMessage(t, db, repo, &orderID, "client@example.com")

	msg, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, msg.ID)
	require.NotNil(t, msg.OrderID)
	assert.Equal(t, orderID, *msg.OrderID)
	assert.Equal(t, "test body", msg.Body)
	assert.False(t, msg.IsRead)
	assert.Nil(t, msg.AttachmentName)
}

func TestMessageRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMessageRepository(db)

	msg, err := repo.FindByID(context.Background(), uint(9999))
	assert.Error(t, err)
	assert.Nil(t, msg)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestMessageRepository_ListForOwner_JoinsLiveStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMessageRepository(db)
	orderID := seedOrder(t, db, domain.StatusQuoteSent)
	insertTestMessage(t, db, repo, &orderID, "client@example.com")
	insertTestMessage(t, db, repo, nil, "client@example.com")
	insertTestMessage(t, db, repo, &orderID, "other@example.com")

	rows, err := repo.ListForOwner(context.Background(), "client@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var joined, orphan int
	for _, row := range rows {
		if row.OrderStatus != nil {
			joined++
			assert.Equal(t, string(domain.StatusQuoteSent), *row.OrderStatus)
		} else {
			orphan++
			// Denormalized copies survive the missing order.
			assert.Equal(t, "Steel Pipes", row.Message.OrderName)
			assert.Equal(t, "100 kg", row.Message.OrderQuantity)
		}
	}
	assert.Equal(t, 1, joined)
	assert.Equal(t, 1, orphan)
}

func TestMessageRepository_MarkReadAndUnreadCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMessageRepository(db)
	orderID := seedOrder(t, db, domain.StatusQuoteSent)
	first := insertTestMessage(t, db, repo, &orderID, "client@example.com")
	second := insertTestMessage(t, db, repo, &orderID, "client@example.com")
	otherOwners := insertTestMessage(t, db, repo, &orderID, "other@example.com")

	count, err := repo.UnreadCount(context.Background(), "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// An id belonging to another owner is silently skipped by the scope.
	err = repo.MarkRead(context.Background(), "client@example.com", []uint{first, second, otherOwners})
	require.NoError(t, err)

	count, err = repo.UnreadCount(context.Background(), "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.UnreadCount(context.Background(), "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMessageRepository_MarkRead_LeavesLaterAppendsUnread(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLMessageRepository(db)
	orderID := seedOrder(t, db, domain.StatusQuoteSent)
	fetched := insertTestMessage(t, db, repo, &orderID, "client@example.com")

	// Appended after the inbox was listed but before the flags were flipped.
	late := insertTestMessage(t, db, repo, &orderID, "client@example.com")

	err := repo.MarkRead(context.Background(), "client@example.com", []uint{fetched})
	require.NoError(t, err)

	count, err := repo.UnreadCount(context.Background(), "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	msg, err := repo.FindByID(context.Background(), late)
	require.NoError(t, err)
	assert.False(t, msg.IsRead)

	// Empty id set is a no-op.
	require.NoError(t, repo.MarkRead(context.Background(), "client@example.com", nil))
}
