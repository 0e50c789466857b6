package jwtPkg

import (
	"BlogGolang/internal/entity"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"os"
	"strings"
	"time"
)

const (
	AccessTokenSecretEnv  = "JWT_ACCESS_TOKEN_SECRET"
	RefreshTokenSecretEnv = "JWT_REFRESH_TOKEN_SECRET"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

func Sign(data map[string]interface{}, expiredAt time.Duration, secretEnvKey string) (string, int64, error) {
	exp := time.Now().Add(expiredAt).Unix()

	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return "", 0, fmt.Errorf("%s not set", secretEnvKey)
	}

	claims := jwt.MapClaims{}
	claims["exp"] = exp
	claims["iat"] = time.Now().Unix()
	claims["jti"] = uuid.NewString()

	for i, v := range data {
		claims[i] = v
	}

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := to.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return token, exp, nil
}

// SignAccessToken issues an access token carrying the user identity claims
// consumed by the token middleware.
func SignAccessToken(user entity.UserLoginData, expiredAt time.Duration) (string, int64, error) {
	return Sign(map[string]interface{}{
		"token_type": TokenTypeAccess,
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"is_staff":   user.IsStaff,
	}, expiredAt, AccessTokenSecretEnv)
}

func SignRefreshToken(userID string, expiredAt time.Duration) (string, int64, error) {
	return Sign(map[string]interface{}{
		"token_type": TokenTypeRefresh,
		"id":         userID,
	}, expiredAt, RefreshTokenSecretEnv)
}

func Parse(tokenString string, secretEnvKey string) (jwt.MapClaims, error) {
	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return nil, fmt.Errorf("%s not set", secretEnvKey)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (jwt.MapClaims, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, errors.New("empty Authorization header")
	}

	parts := strings.Split(header, "Bearer ")
	if len(parts) != 2 {
		return nil, errors.New("invalid Authorization format")
	}

	accessToken := strings.TrimSpace(parts[1])
	if accessToken == "" {
		return nil, errors.New("empty token")
	}

	return Parse(accessToken, secretEnvKey)
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	userData := c.Locals("user")

	user, ok := userData.(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
