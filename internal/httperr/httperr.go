package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func StatusFor(err error) int {
	switch KindOf(err) {
	case KindValidation, KindBusinessRule, KindInsufficientStock:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err using the error taxonomy. Unclassified errors
// never leak their text to the client.
func Respond(c *gin.Context, err error) {
	status := StatusFor(err)

	var se *InsufficientStockError
	if errors.As(err, &se) {
		c.JSON(status, HTTPError{
			Code:    CodeInsufficientStock,
			Message: "Some parts do not have enough stock.",
			Details: gin.H{"unavailable_parts": se.Parts},
		})
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		c.JSON(status, HTTPError{Code: be.Code, Message: be.Message})
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "Unexpected error.")
}
