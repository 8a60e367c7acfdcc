package response

import (
	"net/http"

	"campus-im/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Response is the unified envelope for every endpoint.
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    "OK",
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage writes a 200 envelope with a custom message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    "OK",
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    "OK",
		Message: "created",
		Data:    data,
	})
}

// Err maps a typed error to its HTTP status and writes the envelope.
// Unclassified errors fall through to 500 with a generic message so
// internals never leak to clients.
func Err(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	status := statusOf(code)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}

	c.JSON(status, Response{
		Code:    string(code),
		Message: msg,
	})
}

func statusOf(code apperrors.Code) int {
	switch code {
	case apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeConstraint:
		return http.StatusConflict
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	default:
		// CascadeFailure and Internal both read as server faults.
		return http.StatusInternalServerError
	}
}

// Unauthorized writes a 401 envelope with an explicit message.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:    string(apperrors.CodeUnauthenticated),
		Message: message,
	})
}

// BadRequest writes a 400 envelope with an explicit message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    string(apperrors.CodeValidation),
		Message: message,
	})
}
