package repository

import (
	"context"
	"database/sql"
	"fmt"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLCatalogRepository struct {
	db *sql.DB
}

func NewMySQLCatalogRepository(db *sql.DB) *MySQLCatalogRepository {
	return &MySQLCatalogRepository{db: db}
}

func (r *MySQLCatalogRepository) ResolveProduct(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, product_name, category, stock_status
		FROM products
		WHERE id = ?
	`

	var p domain.Product
	var stock string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Category, &stock)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	p.StockStatus = domain.StockStatus(stock)
	return &p, nil
}

func (r *MySQLCatalogRepository) CountInStock(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE stock_status = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, string(domain.StockInStock)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting in-stock products: %w", err)
	}

	return count, nil
}
