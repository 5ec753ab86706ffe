package serverutils

import (
	"errors"

	"re-ad-be/pkg/annotation"

	"github.com/gofiber/fiber/v2"
)

// StatusCoder is implemented by application errors that know their HTTP status.
type StatusCoder interface {
	StatusCode() int
}

func statusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErr *ValidationError
	var coder StatusCoder

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &coder):
		return coder.StatusCode()
	case errors.Is(err, annotation.ErrReadNotFound),
		errors.Is(err, annotation.ErrHighlightNotFound),
		errors.Is(err, annotation.ErrNodeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, annotation.ErrNoCurrentRead):
		return fiber.StatusConflict
	case errors.Is(err, annotation.ErrEmptyTitle),
		errors.Is(err, annotation.ErrInvalidHighlight),
		errors.Is(err, annotation.ErrInvalidSnapshot):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into the standard
// response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := statusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
