package user

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	domain "user-profile-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:           domain.ID(model.ID),
		Name:         model.Name,
		Nickname:     model.Nickname,
		Country:      model.Country,
		Province:     model.Province,
		Neighborhood: model.Neighborhood,
		Email:        model.Email,
	}
	if model.BirthDate.Valid {
		d := model.BirthDate.Time
		u.BirthDate = &d
	}
	if model.PhotoURL.Valid {
		p := model.PhotoURL.String
		u.PhotoURL = &p
	}

	return u
}

func fromDBModels(models *Users) domain.Users {
	us := make(domain.Users, len(*models))
	for idx, u := range *models {
		us[idx] = fromDBModel(u)
	}

	return us
}

func toDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}

func toText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
