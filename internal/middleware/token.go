package middleware

import (
	"BlogGolang/internal/entity"
	jwtPkg "BlogGolang/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"strings"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	user, err := m.userFromAuthHeader(ctx)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	ctx.Locals("user", user)
	return ctx.Next()
}

// NewOptionalTokenMiddleware resolves the caller when a valid token is present
// and lets the request through anonymously otherwise. Read endpoints use it so
// staff visibility can be decided without requiring authentication.
func (m *middleware) NewOptionalTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return ctx.Next()
	}

	user, err := m.userFromAuthHeader(ctx)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": err.Error(),
		}).Debug("Ignoring invalid token on public endpoint")
		return ctx.Next()
	}

	ctx.Locals("user", user)
	return ctx.Next()
}

func (m *middleware) userFromAuthHeader(ctx *fiber.Ctx) (entity.UserLoginData, error) {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	claims, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecretEnv)
	if err != nil {
		return entity.UserLoginData{}, err
	}

	if tokenType, _ := claims["token_type"].(string); tokenType != jwtPkg.TokenTypeAccess {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	id, idOK := claims["id"].(string)
	username, usernameOK := claims["username"].(string)
	email, emailOK := claims["email"].(string)
	if !idOK || !usernameOK || !emailOK {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	isStaff, _ := claims["is_staff"].(bool)

	return entity.UserLoginData{
		ID:       id,
		Username: username,
		Email:    email,
		IsStaff:  isStaff,
	}, nil
}
