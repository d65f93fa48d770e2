package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts name and email and scans the stored row from RETURNING,
// one statement per call.
func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	var (
		id          int64
		name, email string
	)
	err := r.db.QueryRowContext(ctx, insertUserSQL, u.Name, u.Email).Scan(&id, &name, &email)
	if err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return domain.RestoreUser(id, name, email), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (domain.User, bool, error) {
	var (
		rowID       int64
		name, email string
	)
	err := r.db.QueryRowContext(ctx, getUserSQL, id).Scan(&rowID, &name, &email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, domain.ErrDBUnavailable(err)
	}
	return domain.RestoreUser(rowID, name, email), true, nil
}
