package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"qlcc/internal/http/middleware"
	"qlcc/internal/remote"
	"qlcc/internal/service"
	"qlcc/internal/store"
	"qlcc/internal/workspace"
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

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// domainErrors maps sentinel errors to responses. Order matters: the first
// match wins, so more specific errors come first.
var domainErrors = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{workspace.ErrNotFound, fiber.StatusNotFound, "WORKSPACE_NOT_FOUND", "workspace not found"},
	{store.ErrDisposed, fiber.StatusGone, "WORKSPACE_DISPOSED", "workspace was disposed"},
	{store.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "resource not found"},
	{store.ErrPreconditionNotMet, fiber.StatusConflict, "PRECONDITION_NOT_MET", "action must be confirmed first"},
	{store.ErrMutationInProgress, fiber.StatusConflict, "MUTATION_IN_PROGRESS", "another change is in progress"},
	{store.ErrIllegalTransition, fiber.StatusUnprocessableEntity, "ILLEGAL_TRANSITION", ""},
	{store.ErrDrawerClosed, fiber.StatusConflict, "DRAWER_CLOSED", "drawer is closed"},
	{store.ErrModeUnsupported, fiber.StatusBadRequest, "MODE_UNSUPPORTED", ""},
	{store.ErrInvalidDrawerState, fiber.StatusConflict, "INVALID_DRAWER_STATE", ""},
	{store.ErrStaleResponse, fiber.StatusConflict, "STALE_RESPONSE", "list changed, retry"},
	{service.ErrStorageUnavailable, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "file storage is not configured"},
}

// writeDomainError translates err into the error envelope. An empty message
// in domainErrors means the error text is safe to show.
func writeDomainError(c *fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrValidation) {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return writeError(c, m.status, m.code, msg)
		}
	}
	var f *remote.Failure
	if errors.As(err, &f) {
		msg := "upstream request failed"
		if f.Message != "" {
			msg = f.Message
		}
		return writeError(c, fiber.StatusBadGateway, "REMOTE_FAILURE", msg)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return err
	}
	slog.Default().ErrorContext(c.UserContext(), "request failed",
		slog.String("request_id", middleware.RequestIDFrom(c)),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
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
