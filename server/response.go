package server

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/portfolio-api/auth"
)

// ErrorResponse is the wire shape for every failed request. The Error field
// carries the HTTP reason phrase; Message carries the human readable cause.
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// ErrorHandler maps errors bubbling out of handlers to the error payload.
// Anything we do not recognize becomes a 500 with a generic message so
// internals never leak to the client.
func ErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"
		var fields map[string]string

		var verrs validation.Errors
		var richErr *errors.Error
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &verrs):
			status = fiber.StatusBadRequest
			message = "validation failed"
			fields = map[string]string{}
			for name, ferr := range verrs {
				fields[name] = ferr.Error()
			}
		case errors.As(err, &richErr):
			status = statusFor(richErr)
			message = richErr.Message
			if status >= fiber.StatusInternalServerError {
				message = "internal server error"
				logger.Error("Request failed", "path", c.Path(), "error", err)
			}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		default:
			logger.Error("Request failed", "path", c.Path(), "error", err)
		}

		return c.Status(status).JSON(ErrorResponse{
			Timestamp: time.Now().UTC(),
			Status:    status,
			Error:     http.StatusText(status),
			Message:   message,
			Errors:    fields,
		})
	}
}

// statusFor resolves the HTTP status for a rich error: explicit code first,
// then a category fallback.
func statusFor(err *errors.Error) int {
	if err.Code >= fiber.StatusBadRequest {
		return int(err.Code)
	}

	switch err.Category {
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// errBadBody is returned when the request payload cannot be parsed
var errBadBody = errors.New("invalid request body", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// errBadID is returned for path parameters that are not valid UUIDs
var errBadID = errors.New("invalid id", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)
