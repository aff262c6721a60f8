package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, kind Kind, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Kind:    kind,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code string) {
	Write(c, http.StatusBadRequest, KindValidation, code, Message(code))
}

func Unauthorized(c *gin.Context, code string) {
	c.Abort()
	Write(c, http.StatusUnauthorized, KindForbidden, code, Message(code))
}

func Internal(c *gin.Context, code string) {
	c.Abort()
	Write(c, http.StatusInternalServerError, KindInternal, code, Message(code))
}

// StatusFor maps a kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidTransition:
		return http.StatusConflict
	case KindStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err using its kind and code.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	code := CodeOf(err)
	if kind == KindStore {
		c.Header("Retry-After", "1")
	}
	Write(c, StatusFor(kind), kind, code, Message(code))
}
