package access

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityKey = "identity"

var (
	ErrNoToken       = errors.New("invalid token in context")
	ErrInvalidClaims = errors.New("invalid claims")
	ErrMissingSub    = errors.New("missing sub claim")
)

// Identity is the authenticated caller. It is passed explicitly to every
// policy, service and repository call.
type Identity struct {
	UserID    uuid.UUID
	Superuser bool
}

// CanSee reports whether a record owned by ownerID is visible to the caller.
func (id Identity) CanSee(ownerID uuid.UUID) bool {
	return id.Superuser || id.UserID == ownerID
}

// FromClaims builds an Identity from verified JWT claims.
func FromClaims(claims jwt.MapClaims) (Identity, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, ErrMissingSub
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, err
	}
	superuser, _ := claims["is_superuser"].(bool)
	return Identity{UserID: userID, Superuser: superuser}, nil
}

// FromToken extracts the identity from the JWT stored in Fiber locals by the
// jwt middleware.
func FromToken(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, ErrNoToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidClaims
	}
	return FromClaims(claims)
}

// SetIdentity stores the resolved identity for downstream handlers.
func SetIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(identityKey, id)
}

// GetIdentity returns the identity resolved by the identity middleware,
// falling back to the raw token claims.
func GetIdentity(c *fiber.Ctx) (Identity, error) {
	if id, ok := c.Locals(identityKey).(Identity); ok {
		return id, nil
	}
	return FromToken(c)
}
