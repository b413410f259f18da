package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type MySQLDirectoryRepository struct {
	db *sql.DB
}

func NewMySQLDirectoryRepository(db *sql.DB) *MySQLDirectoryRepository {
	return &MySQLDirectoryRepository{db: db}
}

func (r *MySQLDirectoryRepository) IsAdmin(ctx context.Context, email string) (bool, error) {
	query := `SELECT 1 FROM admins WHERE email = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(email)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying admin by email: %w", err)
	}

	return true, nil
}

func (r *MySQLDirectoryRepository) IsClient(ctx context.Context, email string) (bool, error) {
	query := `SELECT 1 FROM users WHERE email = ? AND user_type = 'client'`

	var one int
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(email)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying client by email: %w", err)
	}

	return true, nil
}

func (r *MySQLDirectoryRepository) CountClients(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting clients: %w", err)
	}

	return count, nil
}
