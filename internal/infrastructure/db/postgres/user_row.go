package postgres

import "github.com/baechuer/real-time-ressys/services/user-service/internal/domain"

type userRow struct {
	ID    int64
	Name  string
	Email string
}

func toDomainUser(ur userRow) domain.User {
	return domain.RestoreUser(ur.ID, ur.Name, ur.Email)
}
