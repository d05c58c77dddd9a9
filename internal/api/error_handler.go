package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Code is a
// stable machine-readable kind; Error is the human-readable message.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP status codes and kinds.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{Error: msg, Code: code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (status int, code, msg string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := "bad_request"
		switch he.Code {
		case http.StatusUnauthorized:
			kind = "unauthenticated"
		case http.StatusNotFound:
			kind = "not_found"
		case http.StatusUnprocessableEntity:
			kind = "validation_failed"
		}
		return he.Code, kind, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusUnprocessableEntity, "validation_failed", err.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email_taken", "email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found", "user not found"
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "task_not_found", "task not found"
	case errors.Is(err, domain.ErrTaskAlreadyCompleted):
		return http.StatusConflict, "task_already_completed", "task already completed"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, "invalid_amount", "amount must be positive"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "insufficient_funds", "insufficient balance"
	}

	// Unexpected error: log the real cause, return a generic message. The
	// caller must not assume any state change occurred.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal_error", "internal server error"
}
