package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wholesaleDelivery/internal/app"
	"wholesaleDelivery/internal/auth"
	"wholesaleDelivery/repository"
)

var (
	errUnauthenticated = errors.New("authentication required")
	errForbidden       = errors.New("admin access required")
)

// badRequest wraps a malformed request body or parameter.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

// statusFor maps a domain error to an HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	var ve *repository.ValidationError
	var br badRequest
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.As(err, &br):
		return http.StatusBadRequest, br.msg
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errUnauthenticated), errors.Is(err, auth.ErrBadCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errForbidden), errors.Is(err, app.ErrNotAssigned):
		return http.StatusForbidden, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func abortWithError(c *gin.Context, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	body := gin.H{"error": msg}
	var ve *repository.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		body["field"] = ve.Field
	}
	c.AbortWithStatusJSON(code, body)
}
