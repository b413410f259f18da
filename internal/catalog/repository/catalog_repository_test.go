package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
	"orderdesk/internal/testutil"
)

func TestNewMySQLCatalogRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLCatalogRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestCatalogRepository_ResolveProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCatalogRepository(db)

	result, err := db.Exec(`INSERT INTO products (product_name, category, stock_status)
		VALUES ('Steel Pipes', 'Metals', 'in_stock')`)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)

	product, err := repo.ResolveProduct(context.Background(), int(id))
	require.NoError(t, err)
	assert.Equal(t, "Steel Pipes", product.Name)
	assert.Equal(t, "Metals", product.Category)
	assert.Equal(t, domain.StockInStock, product.StockStatus)
	assert.True(t, product.InStock())
}

func TestCatalogRepository_ResolveProduct_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCatalogRepository(db)

	product, err := repo.ResolveProduct(context.Background(), 9999)
	assert.Nil(t, product)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCatalogRepository_CountInStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCatalogRepository(db)

	_, err := db.Exec(`INSERT INTO products (product_name, category, stock_status) VALUES
		('Steel Pipes', 'Metals', 'in_stock'),
		('Cement', 'Building', 'in_stock'),
		('Rebar', 'Metals', 'out_of_stock')`)
	require.NoError(t, err)

	count, err := repo.CountInStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
