package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error responses carry a plain "error" string, the wire contract the
// prediction clients parse. Clients also treat a 200 with a populated
// error field as failure, so this shape must never appear alongside a
// result payload.

// RespondError sends the error envelope with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// BadRequest sends a 400 error
func BadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, message)
}

// InternalError sends a 500 error
func InternalError(c *gin.Context, message string) {
	RespondError(c, http.StatusInternalServerError, message)
}

// TooManyRequests sends a 429 error
func TooManyRequests(c *gin.Context, message string) {
	RespondError(c, http.StatusTooManyRequests, message)
}
