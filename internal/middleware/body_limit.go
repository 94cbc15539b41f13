package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tcg-card-studio/internal/models"
)

// BodyLimit caps request bodies at limit bytes. A declared Content-Length over
// the cap is refused up front; otherwise reads past it fail with
// *http.MaxBytesError. A non-positive limit disables the cap.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error:   "request body too large",
				Message: "the request body exceeds the size limit",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
