package dto

import (
	"strings"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Normalize trims surrounding whitespace, so a blank value fails "required".
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// UserResponse is the public JSON view of a user. ID is null for a user
// that was never persisted.
type UserResponse struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromUser(u domain.User) UserResponse {
	resp := UserResponse{Name: u.Name, Email: u.Email}
	if id, ok := u.ID(); ok {
		resp.ID = &id
	}
	return resp
}
