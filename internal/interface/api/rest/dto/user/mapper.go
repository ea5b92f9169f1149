package user

import (
	"errors"
	"strings"
	"time"

	"user-profile-api/internal/domain/user"
)

const DateLayout = "2006-01-02"

func ToResponseUser(uDomain user.User) User {
	var u = User{
		ID:           int64(uDomain.ID),
		Name:         uDomain.Name,
		Nickname:     uDomain.Nickname,
		Country:      uDomain.Country,
		Province:     uDomain.Province,
		Neighborhood: uDomain.Neighborhood,
		Email:        uDomain.Email,
		PhotoURL:     uDomain.PhotoURL,
	}
	if uDomain.BirthDate != nil {
		d := uDomain.BirthDate.Format(DateLayout)
		u.BirthDate = &d
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainUser(uRequest Request) (user.User, error) {
	var u = user.User{
		Name:         strings.TrimSpace(uRequest.Name),
		Nickname:     strings.TrimSpace(uRequest.Nickname),
		Country:      strings.TrimSpace(uRequest.Country),
		Province:     strings.TrimSpace(uRequest.Province),
		Neighborhood: strings.TrimSpace(uRequest.Neighborhood),
		Email:        strings.ToLower(strings.TrimSpace(uRequest.Email)),
	}

	if bd := strings.TrimSpace(uRequest.BirthDate); bd != "" {
		d, err := time.Parse(DateLayout, bd)
		if err != nil {
			return user.User{}, errors.New("invalid birthDate format, want YYYY-MM-DD")
		}
		u.BirthDate = &d
	}

	return u, nil
}
