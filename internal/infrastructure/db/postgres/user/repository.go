package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"user-profile-api/internal/domain/user"
	"user-profile-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, SelectUserByID, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(
		ctx,
		InsertUser,
		req.Name, req.Nickname, toDate(req.BirthDate), req.Country,
		req.Province, req.Neighborhood, req.Email, toText(req.PhotoURL),
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(
		ctx,
		UpdateUserByID,
		req.Name, req.Nickname, toDate(req.BirthDate), req.Country,
		req.Province, req.Neighborhood, req.Email, toText(req.PhotoURL),
		int64(req.ID),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update user %d: %w", req.ID, user.ErrNotFound)
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) DeleteUser(ctx context.Context, id user.ID) error {
	_, err := r.db.Exec(ctx, DeleteUserByID, int64(id))
	return err
}

func scanUser(row pgx.Row) (*User, error) {
	u := new(User)
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Nickname,
		&u.BirthDate,
		&u.Country,
		&u.Province,
		&u.Neighborhood,
		&u.Email,
		&u.PhotoURL,
	); err != nil {
		return nil, err
	}

	return u, nil
}
