package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/templecycle/templecycle-api/internal/application/dto"
	"github.com/templecycle/templecycle-api/internal/domain"
)

// respond writes a success envelope.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Message: message, Data: data})
}

// respondInvalid writes a 400 envelope carrying field-level messages.
func respondInvalid(c *fiber.Ctx, errs []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
		Success: false,
		Message: "validation failed",
		Errors:  errs,
	})
}

// respondError maps a domain sentinel to its HTTP status and writes the
// failure envelope. Unknown errors become 500 without leaking internals.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRFQNotOpen),
		errors.Is(err, domain.ErrRFQNotAccepted),
		errors.Is(err, domain.ErrInvalidDocument):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrUnauthorized):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrDuplicateQuote):
		status, message = fiber.StatusConflict, err.Error()
	}

	return c.Status(status).JSON(dto.Envelope{Success: false, Message: message})
}
