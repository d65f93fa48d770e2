package user

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

/*
UserRepository
--------------
Persistence port for users.
Only describes WHAT the services need, not HOW it's stored.

FindByID reports a missing row with ok=false and a nil error;
"not found" is a normal outcome here, not a failure.
*/
type UserRepository interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	FindByID(ctx context.Context, id int64) (u domain.User, ok bool, err error)
}
