package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/access"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/dto"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/models"
	"github.com/ahmetcoskunkizilkaya/drilling-log/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "Not found",
	})
}

// pathID parses the :id route parameter. A malformed id can never match a
// record, so it is reported as not found.
func pathID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// parseBody decodes a JSON body into out. Values of the wrong JSON type are
// reported against their field.
func parseBody(c *fiber.Ctx, out interface{}) error {
	err := c.BodyParser(out)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.FieldError(typeErr.Field, "Invalid value type, expected "+typeErr.Type.String()+".")
	}
	return errBadBody
}

var errBadBody = errors.New("invalid request body")

// writeError maps service errors onto HTTP responses. Anything unrecognised
// is logged and reported as a 500 without details.
func writeError(c *fiber.Ctx, err error, action string, attrs ...any) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed", Fields: verr.Fields,
		})
	case errors.Is(err, errBadBody):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	case errors.Is(err, access.ErrNoWellAccess):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrWellNotFound), errors.Is(err, services.ErrLayerNotFound):
		return notFound(c)
	}

	requestID, _ := c.Locals("requestid").(string)
	args := append([]any{
		"action", action,
		"request_id", requestID,
		"error", err,
	}, attrs...)
	if id, idErr := access.GetIdentity(c); idErr == nil {
		args = append(args, "user_id", id.UserID.String())
	}
	slog.Error("drilling log request failed", args...)

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
