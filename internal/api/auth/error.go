package auth

import "BlogGolang/pkg/response"

var (
	ErrUserNotFound              = response.NewError(404, "user not found")
	ErrUsernameAlreadyTaken      = response.NewError(400, "username is already taken")
	ErrEmailAlreadyRegistered    = response.NewError(400, "email is already registered")
	ErrInvalidUsernameOrPassword = response.NewError(401, "invalid username or password")
	ErrInvalidRefreshToken       = response.NewError(401, "refresh token invalid or expired")
	ErrCreateUser                = response.NewError(500, "failed to create user")
	ErrGoogleAccountNotLinked    = response.NewError(401, "no account registered with this google email")
)
