package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Tests that need it are
// skipped when no MySQL instance is listening; expects a database named
// 'orderdesk_test' on localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/orderdesk_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"messages", "orders", "products", "admins", "users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		expected_date VARCHAR(50) NOT NULL DEFAULT '',
		quantity VARCHAR(100) NOT NULL DEFAULT '',
		comments TEXT,
		user_email VARCHAR(150) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'inquiry received',
		payment_status VARCHAR(20) NOT NULL DEFAULT 'unpaid',
		created_at DATETIME NOT NULL,
		last_updated DATETIME NOT NULL,
		INDEX idx_user_email (user_email),
		INDEX idx_status (status),
		INDEX idx_last_updated (last_updated)
	)`

	createMessagesTable := `
	CREATE TABLE IF NOT EXISTS messages (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED,
		user_email VARCHAR(150) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		attachment_name VARCHAR(255),
		order_name VARCHAR(255) NOT NULL DEFAULT '',
		order_quantity VARCHAR(100) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		is_read TINYINT(1) DEFAULT 0,
		INDEX idx_msg_user_email (user_email),
		INDEX idx_msg_order (order_id)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		product_name VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL DEFAULT '',
		stock_status VARCHAR(20) NOT NULL DEFAULT 'in_stock'
	)`

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(150) NOT NULL UNIQUE,
		user_type VARCHAR(20) NOT NULL DEFAULT 'client'
	)`

	createAdminsTable := `
	CREATE TABLE IF NOT EXISTS admins (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(150) NOT NULL UNIQUE
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"orders", createOrdersTable},
		{"messages", createMessagesTable},
		{"products", createProductsTable},
		{"users", createUsersTable},
		{"admins", createAdminsTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Fatalf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
