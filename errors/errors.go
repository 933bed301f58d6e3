package errors

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// AppError carries the HTTP status and client-facing message for a failed
// operation. Err holds the underlying cause and is never sent to clients.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func E(op string, err error, message string, code int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusBadRequest)
}

func NotFound(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusNotFound)
}

func Internal(op string, err error, message string) *AppError {
	return E(op, err, message, http.StatusInternalServerError)
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if pkgerrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status for err, 500 when err is not an AppError.
func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func IsInvalidInput(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
