package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestIdentity_PromotesConfiguredAdmins(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", AdminEmails: "chief@example.com"}

	var got access.Identity
	app := fiber.New()
	app.Get("/", JWTProtected(cfg), Identity(cfg), func(c *fiber.Ctx) error {
		id, err := access.GetIdentity(c)
		require.NoError(t, err)
		got = id
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		email     string
		superuser bool
	}{
		{"chief@example.com", true},
		{"driller@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			userID := uuid.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+signed(t, cfg.JWTSecret, jwt.MapClaims{
				"sub":   userID.String(),
				"email": tt.email,
				"exp":   time.Now().Add(time.Minute).Unix(),
			}))

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, userID, got.UserID)
			assert.Equal(t, tt.superuser, got.Superuser)
		})
	}
}

func TestIdentity_RejectsTokenWithoutSubject(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	app := fiber.New()
	app.Get("/", JWTProtected(cfg), Identity(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, cfg.JWTSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	}))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPageProtected_ReadsCookieAndRedirects(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", LoginURL: "/login"}
	app := fiber.New()
	app.Get("/", PageProtected(cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next=/", resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signed(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Minute).Unix(),
	})})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
