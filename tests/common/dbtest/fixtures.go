//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"

	"github.com/fawwazmw/cashier-app/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// the minimal interface required for test DB operations.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ResetDB truncates all tables so each subtest starts from a clean slate.
func ResetDB(db DBLike) error {
	_, err := db.Exec(context.Background(),
		"TRUNCATE transaction_items, transactions, products, users, business RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	return nil
}

// CreateUser inserts a user whose password is the given plaintext.
func CreateUser(db DBLike, username, plainPassword, role string) (uuid.UUID, error) {
	hash, err := password.HashPassword(plainPassword)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = db.Exec(context.Background(),
		`INSERT INTO users (id, username, name, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
		id, username, username, hash, role)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create test user %s: %w", username, err)
	}
	return id, nil
}

// CreateProduct inserts an active product and returns its generated id.
func CreateProduct(db DBLike, name string, price float64, stock int) (int64, error) {
	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO products (name, price, stock, category) VALUES ($1, $2, $3, 'test') RETURNING id`,
		name, price, stock).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create test product %s: %w", name, err)
	}
	return id, nil
}

// ProductStock reads the current stock counter of a product.
func ProductStock(db DBLike, id int64) (int, error) {
	var stock int
	err := db.QueryRow(context.Background(),
		"SELECT stock FROM products WHERE id = $1", id).Scan(&stock)
	if err != nil {
		return 0, fmt.Errorf("failed to read stock of product %d: %w", id, err)
	}
	return stock, nil
}
