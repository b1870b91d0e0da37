package middleware

import (
	"property-lookup/internal/handlers"
	"property-lookup/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors attached with c.Error as a lookup envelope,
// unless the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		utils.LogAndMapError(err, "http_request",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"client_ip", c.ClientIP())

		if c.Writer.Written() {
			return
		}
		handlers.WriteResponse(c, handlers.ErrorResponse("", err))
	}
}
