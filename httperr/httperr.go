// Package httperr defines the service error taxonomy and maps it onto
// HTTP responses. Internal faults are logged with their cause; the caller
// only ever sees a generic message.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func InvalidInput(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

func Internal(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error", Cause: cause}
}

// Write renders err as a JSON error response. Unrecognized errors are
// treated as internal faults.
func Write(c *gin.Context, err error) {
	var herr *Error
	if !errors.As(err, &herr) {
		herr = Internal(err)
	}
	if herr.Status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", herr.Error(),
		)
	}
	c.JSON(herr.Status, gin.H{"error": herr.Message})
}
