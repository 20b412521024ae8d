package middleware

import (
	"github.com/confetti-cuisine/confetti/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader  = "X-Request-ID"
	ContextRequestID = "requestId"
)

// RequestLogger tags every request with an id, reusing the caller's one when
// sent, and logs the requested URL.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		logger.Debugf("request made to: %s [%s]", c.Request.URL.String(), id)
		c.Next()
	}
}
