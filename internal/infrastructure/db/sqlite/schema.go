package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createUsersTableSQL); err != nil {
		return fmt.Errorf("sqlite: ensure schema: %w", err)
	}
	return nil
}
