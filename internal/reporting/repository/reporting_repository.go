package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"orderdesk/internal/domain"
)

// MySQLReportingRepository is the read-only side of the reports. Every
// query recomputes from the orders table; nothing here is cached or
// materialized.
type MySQLReportingRepository struct {
	db *sql.DB
}

func NewMySQLReportingRepository(db *sql.DB) *MySQLReportingRepository {
	return &MySQLReportingRepository{db: db}
}

// OrderCounts holds the dashboard tallies that come straight from the
// orders table. Catalog and directory tiles are filled in by the use case.
type OrderCounts struct {
	OrdersThisWeek   int
	UnplacedOrders   int
	PendingOrders    int
	DeliveredCount   int
	DispatchedCount  int
	UnpaidShipped    int
	MostInquiredItem string
	MostActiveClient string
}

// DeliveredRow is a delivered order joined to its product category.
type DeliveredRow struct {
	ID          uint
	Product     string
	Client      string
	DeliveredAt time.Time
	Category    string
}

type TimelineRow struct {
	ID          uint
	ProductName string
	ClientEmail string
	Status      string
	CreatedAt   time.Time
}

type PaymentRow struct {
	ID            uint
	ProductName   string
	ClientEmail   string
	Quantity      string
	Status        string
	PaymentStatus string
	CreatedAt     time.Time
	LastUpdated   time.Time
}

// CountOrders computes the order-derived dashboard tiles. weekStart bounds
// the "this week" tile on last_updated, so an old order touched recently
// still counts as activity.
func (r *MySQLReportingRepository) CountOrders(ctx context.Context, weekStart time.Time) (*OrderCounts, error) {
	counts := &OrderCounts{}

	scalars := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&counts.OrdersThisWeek, `SELECT COUNT(*) FROM orders WHERE last_updated >= ?`, []any{weekStart}},
		{&counts.UnplacedOrders, `SELECT COUNT(*) FROM orders WHERE status IN (?, ?)`,
			[]any{string(domain.StatusInquiryReceived), string(domain.StatusQuoteSent)}},
		{&counts.PendingOrders, `SELECT COUNT(*) FROM orders WHERE status IN (?, ?)`,
			[]any{string(domain.StatusOrderPlaced), string(domain.StatusDispatched)}},
		{&counts.DeliveredCount, `SELECT COUNT(*) FROM orders WHERE status = ?`,
			[]any{string(domain.StatusDelivered)}},
		{&counts.DispatchedCount, `SELECT COUNT(*) FROM orders WHERE status = ?`,
			[]any{string(domain.StatusDispatched)}},
		{&counts.UnpaidShipped, `SELECT COUNT(*) FROM orders WHERE payment_status = ? AND status IN (?, ?, ?)`,
			[]any{string(domain.PaymentUnpaid), string(domain.StatusOrderPlaced),
				string(domain.StatusDispatched), string(domain.StatusDelivered)}},
	}

	for _, s := range scalars {
		if err := r.db.QueryRowContext(ctx, s.query, s.args...).Scan(s.dest); err != nil {
			return nil, fmt.Errorf("counting orders: %w", err)
		}
	}

	var err error
	counts.MostInquiredItem, err = r.topOne(ctx, `
		SELECT product_name, COUNT(*) AS cnt
		FROM orders
		WHERE status = ?
		GROUP BY product_name
		ORDER BY cnt DESC, product_name ASC
		LIMIT 1
	`, string(domain.StatusInquiryReceived))
	if err != nil {
		return nil, err
	}

	counts.MostActiveClient, err = r.topOne(ctx, `
		SELECT user_email, COUNT(*) AS cnt
		FROM orders
		GROUP BY user_email
		ORDER BY cnt DESC, user_email ASC
		LIMIT 1
	`)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// topOne runs a top-1 aggregate and returns the grouping key, or "" when
// the table is empty. Ties resolve to the lexicographically smallest key.
func (r *MySQLReportingRepository) topOne(ctx context.Context, query string, args ...any) (string, error) {
	var key string
	var cnt int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&key, &cnt)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("aggregating top entry: %w", err)
	}
	return key, nil
}

// ListByWindow returns orders whose last_updated falls after weekStart.
func (r *MySQLReportingRepository) ListByWindow(ctx context.Context, weekStart time.Time) ([]domain.Order, error) {
	query := `
		SELECT id, product_name, expected_date, quantity, comments,
		       user_email, status, payment_status, created_at, last_updated
		FROM orders
		WHERE last_updated >= ?
		ORDER BY last_updated DESC, id DESC
	`
	return r.queryOrders(ctx, query, weekStart)
}

func (r *MySQLReportingRepository) InquiredItems(ctx context.Context) ([]ItemCount, error) {
	query := `
		SELECT product_name, COUNT(*) AS cnt
		FROM orders
		GROUP BY product_name
		ORDER BY cnt DESC, product_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying inquired items: %w", err)
	}
	defer rows.Close()

	var items []ItemCount
	for rows.Next() {
		var item ItemCount
		if err := rows.Scan(&item.Key, &item.Count); err != nil {
			return nil, fmt.Errorf("scanning inquired item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ItemCount is a grouping key with its occurrence count.
type ItemCount struct {
	Key   string
	Count int
}

// ClientTotals returns per-client order totals, busiest client first.
func (r *MySQLReportingRepository) ClientTotals(ctx context.Context) ([]ItemCount, error) {
	query := `
		SELECT user_email, COUNT(*) AS cnt
		FROM orders
		GROUP BY user_email
		ORDER BY cnt DESC, user_email ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying client totals: %w", err)
	}
	defer rows.Close()

	var totals []ItemCount
	for rows.Next() {
		var t ItemCount
		if err := rows.Scan(&t.Key, &t.Count); err != nil {
			return nil, fmt.Errorf("scanning client total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// ProductsForClient returns one client's per-product order histogram.
func (r *MySQLReportingRepository) ProductsForClient(ctx context.Context, email string) ([]ItemCount, error) {
	query := `
		SELECT product_name, COUNT(*) AS cnt
		FROM orders
		WHERE user_email = ?
		GROUP BY product_name
		ORDER BY cnt DESC, product_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("querying client products: %w", err)
	}
	defer rows.Close()

	var products []ItemCount
	for rows.Next() {
		var p ItemCount
		if err := rows.Scan(&p.Key, &p.Count); err != nil {
			return nil, fmt.Errorf("scanning client product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// DeliveredByCategory joins delivered orders to products on the product
// name. Orders whose product was renamed after placement do not join and
// are absent from the result.
func (r *MySQLReportingRepository) DeliveredByCategory(ctx context.Context) ([]DeliveredRow, error) {
	query := `
		SELECT o.id, o.product_name, o.user_email, o.last_updated, p.category
		FROM orders o
		JOIN products p ON LOWER(o.product_name) = LOWER(p.product_name)
		WHERE o.status = ?
		ORDER BY p.category ASC, o.last_updated DESC
	`

	rows, err := r.db.QueryContext(ctx, query, string(domain.StatusDelivered))
	if err != nil {
		return nil, fmt.Errorf("querying delivered orders: %w", err)
	}
	defer rows.Close()

	var delivered []DeliveredRow
	for rows.Next() {
		var d DeliveredRow
		if err := rows.Scan(&d.ID, &d.Product, &d.Client, &d.DeliveredAt, &d.Category); err != nil {
			return nil, fmt.Errorf("scanning delivered order: %w", err)
		}
		delivered = append(delivered, d)
	}

	return delivered, rows.Err()
}

// TimelineMonths lists the distinct YYYY-MM buckets of created_at from the
// cutoff forward, newest first.
func (r *MySQLReportingRepository) TimelineMonths(ctx context.Context, cutoff string) ([]string, error) {
	query := `
		SELECT DISTINCT DATE_FORMAT(created_at, '%Y-%m') AS ym
		FROM orders
		WHERE created_at >= ?
		ORDER BY ym DESC
	`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying timeline months: %w", err)
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var ym string
		if err := rows.Scan(&ym); err != nil {
			return nil, fmt.Errorf("scanning timeline month: %w", err)
		}
		months = append(months, ym)
	}

	return months, rows.Err()
}

func (r *MySQLReportingRepository) TimelineOrders(ctx context.Context, month string) ([]TimelineRow, error) {
	query := `
		SELECT id, product_name, user_email, status, created_at
		FROM orders
		WHERE DATE_FORMAT(created_at, '%Y-%m') = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("querying timeline orders: %w", err)
	}
	defer rows.Close()

	var orders []TimelineRow
	for rows.Next() {
		var o TimelineRow
		if err := rows.Scan(&o.ID, &o.ProductName, &o.ClientEmail, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning timeline order: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// PaymentStatusList returns the shipped orders with their payment flags.
func (r *MySQLReportingRepository) PaymentStatusList(ctx context.Context) ([]PaymentRow, error) {
	query := `
		SELECT id, product_name, user_email, quantity, status,
		       payment_status, created_at, last_updated
		FROM orders
		WHERE status IN (?, ?, ?)
		ORDER BY last_updated DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query,
		string(domain.StatusOrderPlaced), string(domain.StatusDispatched), string(domain.StatusDelivered))
	if err != nil {
		return nil, fmt.Errorf("querying payment statuses: %w", err)
	}
	defer rows.Close()

	var payments []PaymentRow
	for rows.Next() {
		var p PaymentRow
		if err := rows.Scan(&p.ID, &p.ProductName, &p.ClientEmail, &p.Quantity,
			&p.Status, &p.PaymentStatus, &p.CreatedAt, &p.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning payment status: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *MySQLReportingRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.ProductName, &order.ExpectedDate, &order.Quantity,
			&order.Comments, &order.UserEmail, &order.Status, &order.PaymentStatus,
			&order.CreatedAt, &order.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
