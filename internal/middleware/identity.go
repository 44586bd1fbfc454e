package middleware

import (
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/config"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity resolves the caller from the verified JWT and stores it for the
// handlers. Accounts listed in ADMIN_EMAILS or ADMIN_USER_IDS are promoted to
// superuser even when the token does not say so.
func Identity(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := access.FromToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !id.Superuser {
			token := c.Locals("user").(*jwt.Token)
			email, _ := token.Claims.(jwt.MapClaims)["email"].(string)
			id.Superuser = cfg.IsAdmin(email, id.UserID.String())
		}

		access.SetIdentity(c, id)
		return c.Next()
	}
}
