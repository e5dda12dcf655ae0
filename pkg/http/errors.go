package http

import (
	"fmt"
	"net/http"
)

// AppError represents an application-level error with an HTTP status. Only
// Message reaches the client.
type AppError struct {
	Code    string `json:"-"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// BadRequestError creates a 400 error.
func BadRequestError(message string) *AppError {
	return NewAppError("ERR_BAD_REQUEST", message, http.StatusBadRequest)
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return NewAppError("ERR_INTERNAL", message, http.StatusInternalServerError)
}

// Messages shared by handlers and middleware.
const (
	MsgInternal     = "internal server error"
	MsgNotFound     = "endpoint not found"
	MsgNoData       = "no data provided"
	MsgInvalidBody  = "invalid request body"
	MsgMissingField = "missing required fields"
)
