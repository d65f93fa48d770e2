package user

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

type GetService struct {
	users UserRepository
}

func NewGetService(users UserRepository) *GetService {
	return &GetService{users: users}
}

func (s *GetService) Execute(ctx context.Context, id int64) (domain.User, bool, error) {
	return s.users.FindByID(ctx, id)
}
