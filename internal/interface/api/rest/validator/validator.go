package validator

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"user-profile-api/internal/domain/user"
	dto "user-profile-api/internal/interface/api/rest/dto/user"
)

const maxFieldLen = 128

func ParseID(s string) (user.ID, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return user.ID(id), true
}

func ValidateUser(r dto.Request) map[string]string {
	errs := make(map[string]string)

	// Normalize
	name := strings.TrimSpace(r.Name)
	email := strings.ToLower(strings.TrimSpace(r.Email))
	bdate := strings.TrimSpace(r.BirthDate)

	// name (required)
	if name == "" {
		errs["name"] = "name is required"
	}

	for field, v := range map[string]string{
		"name":         name,
		"nickname":     r.Nickname,
		"country":      r.Country,
		"province":     r.Province,
		"neighborhood": r.Neighborhood,
		"email":        email,
	} {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > maxFieldLen {
			errs[field] = field + " must be at most 128 characters"
		}
	}

	// email (optional, format)
	if _, tooLong := errs["email"]; !tooLong && email != "" {
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			errs["email"] = "invalid email format"
		}
	}

	// birthDate (optional, YYYY-MM-DD, not in the future)
	if bdate != "" {
		if dob, err := time.Parse(dto.DateLayout, bdate); err != nil {
			errs["birthDate"] = "must be YYYY-MM-DD"
		} else if dob.After(time.Now().UTC()) {
			errs["birthDate"] = "must not be in the future"
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}
