package apperrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// AppError is the error type crossing the service boundary. Code drives the
// HTTP status mapping in pkg/response; Cause keeps the underlying error
// reachable for errors.Is/As.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Validation(msg string) error { return New(CodeValidation, msg) }

func NotFound(msg string) error { return New(CodeNotFound, msg) }

func Unauthorized(msg string) error { return New(CodeUnauthenticated, msg) }

func Forbidden(msg string) error { return New(CodePermissionDenied, msg) }

func Internal(msg string) error { return New(CodeInternal, msg) }

func CascadeFailure(msg string, cause error) error {
	return Wrap(CodeCascadeFailure, msg, cause)
}

// CodeOf extracts the code from an error chain, CodeUnknown if none.
func CodeOf(err error) Code {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// FromStore translates a storage error into a typed error: duplicate keys
// and FK violations become constraint violations, missing rows become
// not-found, anything else stays internal.
func FromStore(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(CodeNotFound, msg, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(CodeConstraint, msg, err)
	default:
		var ae *AppError
		if errors.As(err, &ae) {
			return err
		}
		return Wrap(CodeInternal, msg, err)
	}
}
