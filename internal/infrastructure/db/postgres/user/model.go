package user

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type (
	User struct {
		ID           int64
		Name         string
		Nickname     string
		BirthDate    pgtype.Date
		Country      string
		Province     string
		Neighborhood string
		Email        string
		PhotoURL     pgtype.Text
	}
	Users []*User
)
