package user

const (
	SelectUsers = `
		SELECT id, name, nickname, birth_date, country, province, neighborhood, email, photo_url
		FROM users
		ORDER BY id
	`
	SelectUserByID = `
		SELECT id, name, nickname, birth_date, country, province, neighborhood, email, photo_url
		FROM users
		WHERE id = $1
	`
	InsertUser = `
		INSERT INTO users (name, nickname, birth_date, country, province, neighborhood, email, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING
		  id, name, nickname, birth_date, country, province, neighborhood, email, photo_url
	`
	UpdateUserByID = `
		UPDATE users
		SET name = $1,
		    nickname = $2,
		    birth_date = $3,
		    country = $4,
		    province = $5,
		    neighborhood = $6,
		    email = $7,
		    photo_url = $8,
		    updated_at = now()
		WHERE id = $9
		RETURNING
		  id, name, nickname, birth_date, country, province, neighborhood, email, photo_url
	`
	DeleteUserByID = `DELETE FROM users WHERE id = $1`
)
