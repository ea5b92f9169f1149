package services

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"user-profile-api/internal/application/ports"
	domain "user-profile-api/internal/domain/user"
)

type UserService struct {
	userRepository domain.Repository
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mCounter:       mCounter,
	}
}

func (us *UserService) GetAll(ctx context.Context) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (us *UserService) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// Save inserts users without an id and fully replaces the rest.
func (us *UserService) Save(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.IsNew() {
		uRet, err := us.userRepository.CreateUser(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		us.inc("user_created_total")
		return uRet, nil
	}

	uRet, err := us.userRepository.UpdateUser(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	us.inc("user_updated_total")

	return uRet, nil
}

func (us *UserService) Delete(ctx context.Context, id domain.ID) error {
	if err := us.userRepository.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	us.inc("user_deleted_total")

	return nil
}

func (us *UserService) inc(result string) {
	if us.mCounter != nil {
		us.mCounter.WithLabelValues(result).Inc()
	}
}
