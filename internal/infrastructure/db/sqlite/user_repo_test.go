package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

func newTestRepo(t *testing.T) (*sql.DB, *UserRepo) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every pooled connection would get its own :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, EnsureSchema(context.Background(), db))
	return db, NewUserRepo(db)
}

func TestUserRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first_user_gets_id_1", func(t *testing.T) {
		_, repo := newTestRepo(t)

		got, err := repo.Create(ctx, domain.NewUser("Alice", "alice@example.com"))
		require.NoError(t, err)

		id, ok := got.ID()
		require.True(t, ok)
		assert.Equal(t, int64(1), id)
		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("duplicates_get_distinct_ids", func(t *testing.T) {
		db, repo := newTestRepo(t)

		a, err := repo.Create(ctx, domain.NewUser("Alice", "alice@example.com"))
		require.NoError(t, err)
		b, err := repo.Create(ctx, domain.NewUser("Alice", "alice@example.com"))
		require.NoError(t, err)

		idA, _ := a.ID()
		idB, _ := b.ID()
		assert.NotEqual(t, idA, idB)

		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
		assert.Equal(t, 2, n)
	})

	t.Run("incoming_id_is_ignored", func(t *testing.T) {
		_, repo := newTestRepo(t)

		got, err := repo.Create(ctx, domain.RestoreUser(50, "Bob", "bob@example.com"))
		require.NoError(t, err)

		id, _ := got.ID()
		assert.Equal(t, int64(1), id)
	})

	t.Run("returns_the_stored_row", func(t *testing.T) {
		db, repo := newTestRepo(t)

		got, err := repo.Create(ctx, domain.NewUser("Erin", "erin@example.com"))
		require.NoError(t, err)
		id, ok := got.ID()
		require.True(t, ok)

		var name, email string
		require.NoError(t, db.QueryRow(`SELECT name, email FROM users WHERE id = ?`, id).Scan(&name, &email))
		assert.Equal(t, domain.RestoreUser(id, name, email), got)
	})

	t.Run("closed_db_maps_to_db_unavailable", func(t *testing.T) {
		db, repo := newTestRepo(t)
		require.NoError(t, db.Close())

		_, err := repo.Create(ctx, domain.NewUser("Alice", "alice@example.com"))
		assert.True(t, domain.Is(err, "db_unavailable"))
	})
}

func TestUserRepo_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("round_trip", func(t *testing.T) {
		_, repo := newTestRepo(t)

		created, err := repo.Create(ctx, domain.NewUser("Carol", "carol@example.com"))
		require.NoError(t, err)
		id, _ := created.ID()

		got, ok, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, created, got)
	})

	t.Run("unknown_id_is_absent", func(t *testing.T) {
		_, repo := newTestRepo(t)

		got, ok, err := repo.FindByID(ctx, 999)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, got.Persisted())
	})

	t.Run("reads_return_fresh_values", func(t *testing.T) {
		_, repo := newTestRepo(t)

		created, err := repo.Create(ctx, domain.NewUser("Dan", "dan@example.com"))
		require.NoError(t, err)
		id, _ := created.ID()

		first, _, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		first.Name = "changed"

		second, _, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Dan", second.Name)
	})
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db, _ := newTestRepo(t)
	assert.NoError(t, EnsureSchema(context.Background(), db))
}
