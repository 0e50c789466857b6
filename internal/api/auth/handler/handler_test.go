package authHandler

import (
	authRepository "BlogGolang/internal/api/auth/repository"
	authService "BlogGolang/internal/api/auth/service"
	"BlogGolang/internal/middleware"
	"BlogGolang/pkg/bcrypt"
	jwtPkg "BlogGolang/pkg/jwt"
	"BlogGolang/pkg/utils"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	is_staff BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	t.Setenv(jwtPkg.AccessTokenSecretEnv, "access-secret")
	t.Setenv(jwtPkg.RefreshTokenSecretEnv, "refresh-secret")

	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mw := middleware.New(logger)
	repo := authRepository.New(db, logger)
	services := authService.New(logger, repo, nil, bcrypt.NewWithCost(4), utils.New())
	handlers := New(logger, services, validator.New(validator.WithRequiredStructEnabled()), mw, nil)

	app := fiber.New(fiber.Config{StrictRouting: true, CaseSensitive: true})
	handlers.Start(app.Group("/api/v1"))

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func registerUser(t *testing.T, app *fiber.App, username string) {
	t.Helper()

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"username":   username,
		"email":      username + "@example.com",
		"password":   "s3cret-password",
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "User registered successfully", body["message"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, user, "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"username": "alice",
		"email":    "other@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "A user with that username already exists", body["error"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "A user with that email already exists", body["error"])
}

func TestRegisterMissingFields(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"username": "alice",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestTokenObtainPair(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")

	resp := postJSON(t, app, "/api/v1/auth/token", fiber.Map{
		"username": "alice",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	access, _ := body["access"].(string)
	refresh, _ := body["refresh"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := jwtPkg.Parse(access, jwtPkg.AccessTokenSecretEnv)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, false, claims["is_staff"])
	assert.Equal(t, jwtPkg.TokenTypeAccess, claims["token_type"])
	assert.NotEmpty(t, claims["jti"])

	refreshClaims, err := jwtPkg.Parse(refresh, jwtPkg.RefreshTokenSecretEnv)
	require.NoError(t, err)
	assert.Equal(t, jwtPkg.TokenTypeRefresh, refreshClaims["token_type"])
}

func TestTokenWrongPassword(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")

	resp := postJSON(t, app, "/api/v1/auth/token", fiber.Map{
		"username": "alice",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "No active account found with the given credentials", body["error"])
}

func TestTokenUnknownUser(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/token", fiber.Map{
		"username": "ghost",
		"password": "whatever-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestTokenRefresh(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")

	resp := postJSON(t, app, "/api/v1/auth/token", fiber.Map{
		"username": "alice",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	refresh := decodeBody(t, resp)["refresh"].(string)

	resp = postJSON(t, app, "/api/v1/auth/token/refresh", fiber.Map{
		"refresh": refresh,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	access, _ := body["access"].(string)
	require.NotEmpty(t, access)

	claims, err := jwtPkg.Parse(access, jwtPkg.AccessTokenSecretEnv)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["username"])
}

func TestTokenRefreshRejectsAccessToken(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")

	resp := postJSON(t, app, "/api/v1/auth/token", fiber.Map{
		"username": "alice",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	access := decodeBody(t, resp)["access"].(string)

	resp = postJSON(t, app, "/api/v1/auth/token/refresh", fiber.Map{
		"refresh": access,
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Token is invalid or expired", body["error"])
}
