package middleware

import (
	"BlogGolang/internal/entity"
	"BlogGolang/pkg/log"

	jwtPkg "BlogGolang/pkg/jwt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	log.NewLogger()
	os.Exit(m.Run())
}

func newTestMiddleware() *middleware {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &middleware{
		rateLimitter:        newRateLimiter(1, 2),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}
}

func echoUserApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/me", handler, func(ctx *fiber.Ctx) error {
		user, _ := ctx.Locals("user").(entity.UserLoginData)
		return ctx.JSON(fiber.Map{"id": user.ID, "username": user.Username})
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestTokenMiddleware(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecretEnv, "access-secret")
	t.Setenv(jwtPkg.RefreshTokenSecretEnv, "refresh-secret")

	m := newTestMiddleware()
	app := echoUserApp(m.NewTokenMiddleware)

	token, _, err := jwtPkg.SignAccessToken(entity.UserLoginData{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
	}, time.Hour)
	require.NoError(t, err)

	resp := doGet(t, app, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doGet(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Refresh tokens are not accepted as access tokens.
	refresh, _, err := jwtPkg.SignRefreshToken("user-1", time.Hour)
	require.NoError(t, err)
	resp = doGet(t, app, refresh)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestTokenMiddlewareRejectsMalformedClaims(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecretEnv, "access-secret")

	m := newTestMiddleware()
	app := echoUserApp(m.NewTokenMiddleware)

	// Validly signed, but the identity claims are not strings.
	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"token_type": jwtPkg.TokenTypeAccess,
		"id":         123,
		"username":   true,
		"email":      nil,
	}, time.Hour, jwtPkg.AccessTokenSecretEnv)
	require.NoError(t, err)

	resp := doGet(t, app, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestOptionalTokenMiddleware(t *testing.T) {
	t.Setenv(jwtPkg.AccessTokenSecretEnv, "access-secret")

	m := newTestMiddleware()
	app := echoUserApp(m.NewOptionalTokenMiddleware)

	resp := doGet(t, app, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Garbage tokens fall back to anonymous instead of failing the request.
	resp = doGet(t, app, "not-a-token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestLoggerConfigPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(NewRequestIDMiddleware())
	app.Use(LoggerConfig())
	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestSanitizeRequestBody(t *testing.T) {
	sanitized := sanitizeRequestBody("/api/v1/auth/token", `{"username":"alice","password":"hunter2"}`)
	assert.Contains(t, sanitized, `"password":"[SECRET]"`)
	assert.Contains(t, sanitized, `"username":"alice"`)

	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("/ping", "plain text"))
}

func TestRateLimiter(t *testing.T) {
	m := newTestMiddleware()

	app := fiber.New()
	app.Get("/ping", m.NewRateLimiter, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		resp.Body.Close()
	}

	// Burst of 2, so the tail of the loop is throttled.
	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Contains(t, statuses, http.StatusTooManyRequests)
}
