package postgres

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

func (r *UserRepo) scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(&ur.ID, &ur.Name, &ur.Email)
	return ur, err
}

// Create inserts name and email; any id on u is ignored and the row is read
// back so the returned user reflects what the store holds.
func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, insertUserSQL, u.Name, u.Email))
	if err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (domain.User, bool, error) {
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, getUserSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), true, nil
}
