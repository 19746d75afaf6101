package db

import (
	"context"

	_ "embed"
)

//go:embed schema.sql
var schema string

// ApplySchema creates all tables and indexes. Statements are idempotent, so
// it is safe to run on every test-database bootstrap.
func ApplySchema(ctx context.Context, db DBTX) error {
	_, err := db.Exec(ctx, schema)
	return err
}
