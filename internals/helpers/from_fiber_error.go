package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FromFiberError converts an error bubbled out of a service call into
// the standard JSON error envelope. Validation failures render as a
// field-level 422, a *fiber.Error keeps its status, anything else
// falls back to a 500 with the original message.
func FromFiberError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return JsonValidationError(c, ValidatorErrorMap(verrs))
	}
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
