package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"warehouse-app/config"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp() *fiber.App {
	config.JWTSecret = "test-secret"
	config.JWTExpiration = 3600
	UseAccountChecker(nil)

	app := fiber.New()
	app.Get("/me", AuthMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.JSON(ctx.Locals("session"))
	})
	app.Get("/admin", AuthMiddleware, RequireAdmin, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string, prepare func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if prepare != nil {
		prepare(req)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	app := newTestApp()
	token, expiresAt, err := GenerateToken(services.Session{
		UserID: 7, EmployeeID: 3, Login: "ivan_p", Role: "employee", WarehouseIDs: []uint{4, 2, 4},
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	resp := get(t, app, "/me", bearer(token))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var session services.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	assert.Equal(t, "ivan_p", session.Login)
	assert.Equal(t, uint(3), session.EmployeeID)
	assert.Equal(t, []uint{2, 4}, session.WarehouseIDs)

	resp = get(t, app, "/me", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = get(t, app, "/admin", bearer(token))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminToken(t *testing.T) {
	app := newTestApp()
	token, _, err := GenerateToken(services.Session{UserID: 1, Login: "boss", Role: "admin", IsAdmin: true})
	require.NoError(t, err)

	resp := get(t, app, "/admin", bearer(token))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	app := newTestApp()

	resp := get(t, app, "/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = get(t, app, "/me", func(req *http.Request) {
		req.Header.Set("Authorization", "Token abc")
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = get(t, app, "/me", bearer("not-a-jwt"))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, _, err := GenerateToken(services.Session{UserID: 7, Login: "ivan_p"})
	require.NoError(t, err)
	config.JWTSecret = "rotated"
	resp = get(t, app, "/me", bearer(token))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	config.JWTSecret = "test-secret"

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Session: services.Session{UserID: 7, Login: "ivan_p"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte(config.JWTSecret))
	require.NoError(t, err)
	resp = get(t, app, "/me", bearer(signed))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	anonymous, _, err := GenerateToken(services.Session{})
	require.NoError(t, err)
	resp = get(t, app, "/me", bearer(anonymous))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

type accountsStub map[uint]error

func (s accountsStub) CheckAccount(_ context.Context, userID uint) error {
	return s[userID]
}

func TestAuthMiddlewareChecksAccount(t *testing.T) {
	app := newTestApp()
	UseAccountChecker(accountsStub{
		8: &services.AppError{Kind: services.KindBusiness, Code: services.CodeAccountDeactivated, Message: "account deactivated"},
		9: errors.New("connection refused"),
	})
	t.Cleanup(func() { UseAccountChecker(nil) })

	for userID, status := range map[uint]int{7: fiber.StatusOK, 8: fiber.StatusUnauthorized, 9: fiber.StatusInternalServerError} {
		token, _, err := GenerateToken(services.Session{UserID: userID, Login: "ivan_p"})
		require.NoError(t, err)
		resp := get(t, app, "/me", bearer(token))
		assert.Equal(t, status, resp.StatusCode, "user %d", userID)
	}
}

func TestRateLimit(t *testing.T) {
	limit, err := RateLimit("2-M", zap.NewNop())
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/login", limit, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	_, err = RateLimit("bogus", zap.NewNop())
	assert.Error(t, err)
}
