package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the users table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createUsersTableSQL); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}
