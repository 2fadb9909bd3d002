package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ateriyan143-bot/school-clinic/internal/handler"
)

// SizeLimit bounds request bodies. The limit is sized to admit profile image
// data URLs plus the rest of the payload.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBodyBytes {
			c.JSON(http.StatusRequestEntityTooLarge, handler.NewErrorResponse("Request body too large"))
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
