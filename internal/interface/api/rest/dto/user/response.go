package user

type (
	User struct {
		ID           int64   `json:"id"`
		Name         string  `json:"name"`
		Nickname     string  `json:"nickname"`
		BirthDate    *string `json:"birthDate"`
		Country      string  `json:"country"`
		Province     string  `json:"province"`
		Neighborhood string  `json:"neighborhood"`
		Email        string  `json:"email"`
		PhotoURL     *string `json:"photoUrl"`
	}
	Users []User
)
