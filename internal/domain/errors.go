package domain

import (
	"errors"
	"fmt"
)

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Error codes shared by the API and the CLI.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeStorage         = "STORAGE_ERROR"
	CodeRender          = "RENDER_ERROR"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s %s introuvable", entity, id), Status: 404}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: CodeValidation, Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: msg, Status: 401}
}

// ErrStorage reports a failed transaction. The message is safe to show; the cause is for logs.
func ErrStorage(op string, cause error) *AppError {
	return &AppError{Code: CodeStorage, Message: "échec de l'enregistrement (" + op + ")", Status: 500, Cause: cause}
}

// ErrRender reports a document generation failure, distinct from data errors.
func ErrRender(cause error) *AppError {
	return &AppError{Code: CodeRender, Message: "échec de la génération du CV", Status: 500, Cause: cause}
}

func ErrPayloadTooLarge(msg string) *AppError {
	return &AppError{Code: CodePayloadTooLarge, Message: msg, Status: 413}
}

func ErrRateLimited() *AppError {
	return &AppError{Code: CodeRateLimited, Message: "trop de requêtes", Status: 429}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: msg, Status: 500, Cause: cause}
}

// IsCode reports whether err is an *AppError carrying the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
