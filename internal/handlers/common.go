package handlers

import (
	"errors"
	"fmt"

	"pasar/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForError maps business errors to HTTP statuses. Business-rule
// violations get distinct client codes; anything unrecognized is a server
// fault.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidQuantity):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrCartNotFound),
		errors.Is(err, models.ErrCartItemNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrRoleNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the standard error envelope.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// failWith maps err to an HTTP status and writes the error envelope.
// Unrecognized errors get a generic message so internals never reach the
// client; the original error is logged at the call site.
func failWith(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		return fail(c, status, "Internal server error")
	}
	return fail(c, status, err.Error())
}

// validationMessages flattens validator errors into a field→message map.
func validationMessages(err error) map[string]string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": err.Error()}
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}

// failValidation writes a 400 with per-field validation messages.
func failValidation(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  validationMessages(err),
	})
}
