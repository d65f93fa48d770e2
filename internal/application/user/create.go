package user

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

type CreateService struct {
	users UserRepository
}

func NewCreateService(users UserRepository) *CreateService {
	return &CreateService{users: users}
}

// Execute stores a new user and returns the stored value, id included.
// Input is expected to be validated by the caller.
func (s *CreateService) Execute(ctx context.Context, name, email string) (domain.User, error) {
	u := domain.NewUser(name, email)
	return s.users.Create(ctx, u)
}
