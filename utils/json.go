package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes the response payload with status 200.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Fail writes an error JSON response with the given status.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
