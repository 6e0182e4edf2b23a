package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "probank/internal/errors"
	"probank/internal/services"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// The web UI flows are form POST -> operation -> 303 redirect with a flash
// message, for success and failure alike. Handlers must use:
//
// 1. RedirectWithSuccess - operation succeeded, flash the confirmation
// 2. RedirectWithError   - a typed ledger error, flash its default message
// 3. RedirectWithSystemError - unexpected failure: log it, flash a generic
//    message, never leak internals to the browser

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// RedirectWithSuccess flashes a success banner and redirects
func RedirectWithSuccess(c echo.Context, target, message string) error {
	SetFlash(c, FlashSuccess, message)
	return c.Redirect(http.StatusSeeOther, target)
}

// RedirectWithError maps a ledger error to its error code, flashes the
// code's default message, and redirects back to the retry-capable form.
func RedirectWithError(c echo.Context, target string, err error) error {
	code := ErrorCodeFor(err)
	SetFlash(c, FlashDanger, apperrors.GetErrorMessage(code))
	return c.Redirect(http.StatusSeeOther, target)
}

// RedirectWithCode flashes the default message for an explicit error code
func RedirectWithCode(c echo.Context, target string, code apperrors.ErrorCode) error {
	SetFlash(c, FlashDanger, apperrors.GetErrorMessage(code))
	return c.Redirect(http.StatusSeeOther, target)
}

// RedirectWithSystemError logs the internal error and flashes a generic
// failure message
func RedirectWithSystemError(c echo.Context, target string, err error) error {
	slog.Error("unexpected error handling request",
		"trace_id", getTraceID(c),
		"path", c.Request().URL.Path,
		"error", err,
	)
	SetFlash(c, FlashDanger, apperrors.GetErrorMessage(apperrors.SystemInternalError))
	return c.Redirect(http.StatusSeeOther, target)
}

// ErrorCodeFor translates service sentinel errors into error codes
func ErrorCodeFor(err error) apperrors.ErrorCode {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		return apperrors.AccountNotFound
	case errors.Is(err, services.ErrEmailExists):
		return apperrors.AccountEmailExists
	case errors.Is(err, services.ErrInvalidDeposit):
		return apperrors.AccountInvalidDeposit
	case errors.Is(err, services.ErrInvalidAmount):
		return apperrors.TransactionInvalidAmount
	case errors.Is(err, services.ErrInsufficientFunds):
		return apperrors.TransactionInsufficientFunds
	case errors.Is(err, services.ErrInvalidTransactionType):
		return apperrors.TransactionInvalidType
	default:
		return apperrors.SystemInternalError
	}
}

// IsSystemError reports whether the error is unexpected rather than one of
// the typed, user-recoverable ledger errors
func IsSystemError(err error) bool {
	return ErrorCodeFor(err) == apperrors.SystemInternalError
}
