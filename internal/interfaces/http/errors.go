package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/dto"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/application/usecase"
	"github.com/Gaurav-0801/Manufacturing-Dashboard/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// respondError maps domain errors to status codes. fallback is the message for 5xx.
func respondError(c *fiber.Ctx, err error, notFound, fallback string) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidAction):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid action", Code: "INVALID_ACTION"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: notFound, Code: "NOT_FOUND"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error(), Code: "VALIDATION"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error(), Code: "DUPLICATE"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: fallback, Code: "INTERNAL"})
	}
}

// parseBody decodes and validates; it writes the 400 itself and reports false on failure.
func parseBody(c *fiber.Ctx, in any) bool {
	if err := c.BodyParser(in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body", Code: "INVALID_BODY"})
		return false
	}
	if err := validate.Struct(in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: validationMessage(err), Code: "VALIDATION"})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return "invalid field " + fe.Field() + ": failed " + fe.Tag()
	}
	return err.Error()
}

// pathID returns the :id param when it is a UUID. Malformed ids cannot exist, so they answer 404.
func pathID(c *fiber.Ctx, notFound string) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: notFound, Code: "NOT_FOUND"})
		return "", false
	}
	return id, true
}

// queryID reads an optional UUID query parameter; a malformed value answers 400.
func queryID(c *fiber.Ctx, key string) (string, bool) {
	v := c.Query(key)
	if v == "" {
		return "", true
	}
	if _, err := uuid.Parse(v); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid " + key, Code: "INVALID_PARAMS"})
		return "", false
	}
	return v, true
}
