// Package memory keeps users in process memory. It backs STORAGE=memory and
// tests that need a real repository without a database.
package memory

import (
	"context"
	"sync"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

type record struct {
	name  string
	email string
}

type UserRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]record
}

func NewUserRepo() *UserRepo {
	return &UserRepo{nextID: 1, rows: make(map[int64]record)}
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.rows[id] = record{name: u.Name, email: u.Email}
	return domain.RestoreUser(id, u.Name, u.Email), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (domain.User, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, false, domain.ErrDBUnavailable(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.rows[id]
	if !ok {
		return domain.User{}, false, nil
	}
	return domain.RestoreUser(id, rec.name, rec.email), true, nil
}

// Len reports how many users are stored.
func (r *UserRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
