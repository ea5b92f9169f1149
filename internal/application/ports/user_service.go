package ports

import (
	"context"

	"user-profile-api/internal/domain/user"
)

type UserService interface {
	GetAll(ctx context.Context) (user.Users, error)
	GetByID(ctx context.Context, id user.ID) (*user.User, error)
	Save(ctx context.Context, u user.User) (*user.User, error)
	Delete(ctx context.Context, id user.ID) error
}
