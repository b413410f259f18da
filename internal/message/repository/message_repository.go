package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLMessageRepository struct {
	db *sql.DB
}

func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{db: db}
}

// Insert appends a ledger entry inside the transaction that carries its
// status change, so an entry can never exist without the transition that
// produced it, or vice versa.
func (r *MySQLMessageRepository) Insert(ctx context.Context, tx *sql.Tx, msg domain.Message) (uint, error) {
	query := `
		INSERT INTO messages (order_id, user_email, subject, body, attachment_name,
		                      order_name, order_quantity, created_at, is_read)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
	`

	result, err := tx.ExecContext(ctx, query,
		msg.OrderID, msg.UserEmail, msg.Subject, msg.Body, msg.AttachmentName,
		msg.OrderName, msg.OrderQuantity, msg.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting message: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLMessageRepository) FindByID(ctx context.Context, id uint) (*domain.Message, error) {
	query := `
		SELECT id, order_id, user_email, subject, body, attachment_name,
		       order_name, order_quantity, created_at, is_read
		FROM messages
		WHERE id = ?
	`

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("message with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying message by id: %w", err)
	}

	return msg, nil
}

// InboxRow is a ledger entry joined with the live status of its order. The
// join is a LEFT JOIN on the order id: entries whose order was deleted
// still come back, with OrderStatus nil.
type InboxRow struct {
	Message     domain.Message
	OrderStatus *string
}

func (r *MySQLMessageRepository) ListForOwner(ctx context.Context, email string) ([]InboxRow, error) {
	query := `
		SELECT m.id, m.order_id, m.user_email, m.subject, m.body, m.attachment_name,
		       m.order_name, m.order_quantity, m.created_at, m.is_read,
		       o.status AS order_status
		FROM messages m
		LEFT JOIN orders o ON m.order_id = o.id
		WHERE m.user_email = ?
		ORDER BY m.created_at DESC, m.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("querying messages for owner: %w", err)
	}
	defer rows.Close()

	var entries []InboxRow
	for rows.Next() {
		var msg domain.Message
		var isRead sql.NullBool
		var status sql.NullString
		err := rows.Scan(
			&msg.ID, &msg.OrderID, &msg.UserEmail, &msg.Subject, &msg.Body,
			&msg.AttachmentName, &msg.OrderName, &msg.OrderQuantity,
			&msg.CreatedAt, &isRead, &status,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}

		msg.IsRead = isRead.Valid && isRead.Bool

		entry := InboxRow{Message: msg}
		if status.Valid {
			entry.OrderStatus = &status.String
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}

	return entries, nil
}

// MarkRead flips exactly the given entries for the owner. Callers pass the
// ids they just fetched, so an entry appended concurrently is never flagged
// read before anyone has seen it. Idempotent; a nil slice is a no-op.
func (r *MySQLMessageRepository) MarkRead(ctx context.Context, email string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, 0, len(ids)+1)
	args = append(args, email)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		UPDATE messages SET is_read = 1
		WHERE user_email = ? AND id IN (%s)
	`, strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("marking messages read: %w", err)
	}

	return nil
}

func (r *MySQLMessageRepository) UnreadCount(ctx context.Context, email string) (int, error) {
	query := `
		SELECT COUNT(*) FROM messages
		WHERE user_email = ? AND (is_read = 0 OR is_read IS NULL)
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting unread messages: %w", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var msg domain.Message
	var isRead sql.NullBool
	err := row.Scan(
		&msg.ID, &msg.OrderID, &msg.UserEmail, &msg.Subject, &msg.Body,
		&msg.AttachmentName, &msg.OrderName, &msg.OrderQuantity,
		&msg.CreatedAt, &isRead,
	)
	if err != nil {
		return nil, err
	}

	msg.IsRead = isRead.Valid && isRead.Bool
	return &msg, nil
}
