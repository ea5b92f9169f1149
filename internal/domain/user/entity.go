package user

import (
	"time"
)

type (
	ID   int64
	User struct {
		ID           ID
		Name         string
		Nickname     string
		BirthDate    *time.Time
		Country      string
		Province     string
		Neighborhood string
		Email        string
		PhotoURL     *string
	}
	Users []*User
)

// IsNew reports whether the user has not been persisted yet.
func (u *User) IsNew() bool { return u.ID == 0 }

// ApplyEdits overwrites every editable field with the values from in.
// ID and PhotoURL are left untouched.
func (u *User) ApplyEdits(in User) {
	u.Name = in.Name
	u.Nickname = in.Nickname
	u.BirthDate = in.BirthDate
	u.Country = in.Country
	u.Province = in.Province
	u.Neighborhood = in.Neighborhood
	u.Email = in.Email
}
