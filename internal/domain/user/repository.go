package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	FetchUsers(ctx context.Context) (Users, error)
	// FetchUserByID returns nil, nil when the user does not exist.
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	// UpdateUser replaces the stored record. It returns ErrNotFound when no row matched.
	UpdateUser(ctx context.Context, req User) (*User, error)
	// DeleteUser is a no-op for unknown ids.
	DeleteUser(ctx context.Context, id ID) error
}
