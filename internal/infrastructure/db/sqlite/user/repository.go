package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"user-profile-api/internal/domain/user"
)

const dateLayout = "2006-01-02"

const (
	selectUsers = `
		SELECT id, name, nickname, birth_date, country, province, neighborhood, email, photo_url
		FROM users
		ORDER BY id
	`
	selectUserByID = `
		SELECT id, name, nickname, birth_date, country, province, neighborhood, email, photo_url
		FROM users
		WHERE id = ?
	`
	insertUser = `
		INSERT INTO users (name, nickname, birth_date, country, province, neighborhood, email, photo_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, name, nickname, birth_date, country, province, neighborhood, email, photo_url
	`
	updateUserByID = `
		UPDATE users
		SET name = ?, nickname = ?, birth_date = ?, country = ?, province = ?,
		    neighborhood = ?, email = ?, photo_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING id, name, nickname, birth_date, country, province, neighborhood, email, photo_url
	`
	deleteUserByID = `DELETE FROM users WHERE id = ?`
)

// Repository implements user.Repository on top of SQLite.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	rows, err := r.db.QueryContext(ctx, selectUsers)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	us := user.Users{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return us, nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByID, int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, insertUser,
		req.Name, req.Nickname, toDate(req.BirthDate), req.Country,
		req.Province, req.Neighborhood, req.Email, toText(req.PhotoURL),
	))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, updateUserByID,
		req.Name, req.Nickname, toDate(req.BirthDate), req.Country,
		req.Province, req.Neighborhood, req.Email, toText(req.PhotoURL),
		int64(req.ID),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("update user %d: %w", req.ID, user.ErrNotFound)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id user.ID) error {
	if _, err := r.db.ExecContext(ctx, deleteUserByID, int64(id)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*user.User, error) {
	var (
		id        int64
		birthDate sql.NullString
		photoURL  sql.NullString
		u         user.User
	)
	if err := row.Scan(
		&id,
		&u.Name,
		&u.Nickname,
		&birthDate,
		&u.Country,
		&u.Province,
		&u.Neighborhood,
		&u.Email,
		&photoURL,
	); err != nil {
		return nil, err
	}

	u.ID = user.ID(id)
	if birthDate.Valid && birthDate.String != "" {
		d, err := time.Parse(dateLayout, birthDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse birth_date of user %d: %w", id, err)
		}
		u.BirthDate = &d
	}
	if photoURL.Valid {
		p := photoURL.String
		u.PhotoURL = &p
	}

	return &u, nil
}

func toDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}

func toText(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
