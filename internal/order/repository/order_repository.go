package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, product_name, expected_date, quantity, comments,
	       user_email, status, payment_status, created_at, last_updated`

func (r *MySQLOrderRepository) Insert(ctx context.Context, order domain.Order) (uint, error) {
	query := `
		INSERT INTO orders (product_name, expected_date, quantity, comments,
		                    user_email, status, payment_status, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.ProductName, order.ExpectedDate, order.Quantity, order.Comments,
		order.UserEmail, string(order.Status), string(order.PaymentStatus),
		order.CreatedAt, order.LastUpdated,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// FindByIDForUpdate reads an order inside a transaction with a row lock, so
// concurrent transitions on the same order serialize.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ? FOR UPDATE`

	order, err := scanOrder(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order for update: %w", err)
	}

	return order, nil
}

// UpdateStatus moves an order between two known statuses and stamps
// last_updated. The WHERE guard on the current status means a concurrent
// transition that got there first makes this a zero-row write.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, from, to domain.Status, now time.Time) error {
	query := `UPDATE orders SET status = ?, last_updated = ? WHERE id = ? AND status = ?`

	result, err := tx.ExecContext(ctx, query, string(to), now, id, string(from))
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewInternalError(fmt.Sprintf("order %d changed status concurrently", id), nil)
	}

	return nil
}

// UpdatePaymentStatus is a no-op for unknown ids; callers that need the
// existence guarantee check first.
func (r *MySQLOrderRepository) UpdatePaymentStatus(ctx context.Context, id uint, value domain.PaymentStatus) error {
	query := `UPDATE orders SET payment_status = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, string(value), id); err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) ListByOwner(ctx context.Context, email string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_email = ?
		ORDER BY last_updated DESC, id DESC`

	return r.queryOrders(ctx, query, email)
}

func (r *MySQLOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		ORDER BY last_updated DESC, id DESC`

	return r.queryOrders(ctx, query)
}

func (r *MySQLOrderRepository) ListByStatuses(ctx context.Context, statuses []domain.Status) ([]domain.Order, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, s := range statuses {
		placeholders[i] = "?"
		args[i] = string(s)
	}

	query := fmt.Sprintf(`SELECT `+orderColumns+`
		FROM orders
		WHERE status IN (%s)
		ORDER BY last_updated DESC, id DESC`,
		strings.Join(placeholders, ", "),
	)

	return r.queryOrders(ctx, query, args...)
}

// Delete removes the order row only. Ledger entries are left in place; they
// keep their denormalized order name and quantity.
func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	query := `DELETE FROM orders WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status, payment string
	err := row.Scan(
		&order.ID, &order.ProductName, &order.ExpectedDate, &order.Quantity,
		&order.Comments, &order.UserEmail, &status, &payment,
		&order.CreatedAt, &order.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.Status(status)
	order.PaymentStatus = domain.PaymentStatus(payment)
	return &order, nil
}
