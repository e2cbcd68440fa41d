// Package response writes the error envelopes returned outside GraphQL
// execution (malformed HTTP requests, panics) in the same shape the engine
// uses, so clients need one error parser.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Codes used for transport-level failures. Resolver failures carry
// apperror kinds instead.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL"
)

type Response struct {
	Errors []Error `json:"errors"`
}

type Error struct {
	Message    string     `json:"message"`
	Extensions Extensions `json:"extensions"`
}

type Extensions struct {
	Code string `json:"code"`
}

// ErrorResponse aborts the request with a single error.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Errors: []Error{{
			Message:    message,
			Extensions: Extensions{Code: code},
		}},
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, CodeBadRequest, message)
}

func MethodNotAllowed(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusMethodNotAllowed, CodeMethodNotAllowed, message)
}

func InternalError(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
