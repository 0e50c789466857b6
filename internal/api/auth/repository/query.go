package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id,
			username,
			email,
			password,
			first_name,
			last_name,
			is_staff,
			created_at,
			updated_at
		) VALUES (
			:id,
			:username,
			:email,
			:password,
			:first_name,
			:last_name,
			:is_staff,
			:created_at,
			:updated_at
		)
	`

	queryGetUser = `
		SELECT
			id,
			username,
			email,
			password,
			first_name,
			last_name,
			is_staff,
			created_at,
			updated_at
		FROM users
	`

	queryGetUserByID       = queryGetUser + ` WHERE id = :id`
	queryGetUserByUsername = queryGetUser + ` WHERE username = :username`
	queryGetUserByEmail    = queryGetUser + ` WHERE email = :email`

	queryCountUserByUsername = `
		SELECT COUNT(*)
		FROM users
		WHERE username = :username
	`

	queryCountUserByEmail = `
		SELECT COUNT(*)
		FROM users
		WHERE email = :email
	`
)
