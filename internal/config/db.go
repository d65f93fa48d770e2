package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	zlog "github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// NewDB opens and pings a database for the given storage kind
// (postgres or sqlite).
func NewDB(storage, dsn string, debug bool) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DB DSN")
	}

	var driver string
	switch storage {
	case StoragePostgres:
		driver = "pgx"
	case StorageSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("no SQL driver for storage %q", storage)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if storage == StorageSQLite {
		// sqlite serializes writers; one connection also keeps :memory: databases shared
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(60 * time.Minute)
	}

	// verify connectivity early (fail fast)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if debug {
		logServerInfo(ctx, db, storage)
	}

	return db, nil
}

// logServerInfo proves which server we are connected to (no secrets).
func logServerInfo(ctx context.Context, db *sql.DB, storage string) {
	ev := zlog.Info().Str("storage", storage)
	switch storage {
	case StoragePostgres:
		var who, dbname, ver string
		_ = db.QueryRowContext(ctx, "SELECT current_user").Scan(&who)
		_ = db.QueryRowContext(ctx, "SELECT current_database()").Scan(&dbname)
		_ = db.QueryRowContext(ctx, "SHOW server_version").Scan(&ver)
		ev = ev.Str("user", who).Str("db", dbname).Str("version", ver)
	case StorageSQLite:
		var ver string
		_ = db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&ver)
		ev = ev.Str("version", ver)
	}
	ev.Msg("db connected")
}
