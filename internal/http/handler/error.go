package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
	"github.com/herinqueoliveira/Teste-Wiki/internal/http/middleware"
	"github.com/herinqueoliveira/Teste-Wiki/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts the request_id stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response. message must already
// be safe for end users; internal causes are logged where they occur, never
// echoed here.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// writeServiceError maps document store failures to their status class:
// validation failures are specific and actionable, everything else is opaque.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrInvalidDocument):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// conversionErrorEnvelope classifies a per-file conversion failure for the
// batch upload report.
func conversionErrorEnvelope(err error) errorEnvelope {
	switch {
	case errors.Is(err, convert.ErrUnsupportedFormat):
		return errorEnvelope{Code: "UNSUPPORTED_FORMAT", Message: convert.ErrUnsupportedFormat.Error()}
	case errors.Is(err, convert.ErrFileTooLarge):
		return errorEnvelope{Code: "FILE_TOO_LARGE", Message: err.Error()}
	case errors.Is(err, convert.ErrTooManyPages):
		return errorEnvelope{Code: "TOO_MANY_PAGES", Message: err.Error()}
	case errors.Is(err, convert.ErrPDFEngineMissing), errors.Is(err, convert.ErrDocxEngineMissing):
		return errorEnvelope{Code: "CONVERSION_UNAVAILABLE", Message: err.Error()}
	case errors.Is(err, service.ErrInvalidDocument):
		return errorEnvelope{Code: "VALIDATION_ERROR", Message: err.Error()}
	case errors.Is(err, service.ErrStorageUnavailable):
		return errorEnvelope{Code: "INTERNAL_ERROR", Message: "internal server error"}
	default:
		var convErr *convert.Error
		if errors.As(err, &convErr) {
			return errorEnvelope{Code: "CONVERSION_FAILED", Message: err.Error()}
		}
		return errorEnvelope{Code: "INTERNAL_ERROR", Message: "internal server error"}
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for unrouted paths and unexpected panics alike.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
