package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hancock/internal/http/middleware"
	"hancock/internal/logger"
	"hancock/internal/manifest"
	"hancock/internal/payload"
	"hancock/internal/service"
	"hancock/internal/storage"
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

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ENVELOPE", "NOT_FOUND")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps domain errors to responses. Validation and remote messages are
// returned to the caller; anything else is logged and reported as an internal error.
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		merr      *manifest.Error
		invalid   *service.InvalidEnvelopeError
		ungrouped *payload.UngroupedRecipientError
		derr      *service.DocusignError
	)

	switch {
	case errors.Is(err, service.ErrConfigurationMissing):
		return writeError(c, fiber.StatusServiceUnavailable, "CONFIGURATION_MISSING", err.Error())
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", err.Error())
	case errors.Is(err, service.ErrCallbackNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrCallbackNameRequired):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_CALLBACK", err.Error())
	case errors.Is(err, storage.ErrObjectNotFound):
		return writeError(c, fiber.StatusUnprocessableEntity, "DOCUMENT_NOT_FOUND", err.Error())
	case errors.As(err, &merr):
		return writeError(c, fiber.StatusBadRequest, "INVALID_MANIFEST", merr.Error())
	case errors.As(err, &invalid):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_ENVELOPE", invalid.Error())
	case errors.As(err, &ungrouped):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNGROUPED_RECIPIENT", ungrouped.Error())
	case errors.As(err, &derr):
		if derr.StatusCode == fiber.StatusNotFound {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", derr.Error())
		}
		return writeError(c, fiber.StatusBadGateway, "DOCUSIGN_ERROR", derr.Error())
	default:
		logger.Error(c.UserContext(), "request failed", "error", err)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
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
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
