package middleware

import (
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/config"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// PageProtected guards HTML pages. Browsers without a valid token are sent to
// the login page instead of receiving a JSON error. The token is also read
// from the access_token cookie.
func PageProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:Authorization,cookie:access_token",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Redirect(cfg.LoginURL+"?next="+c.OriginalURL(), fiber.StatusFound)
		},
	})
}
