package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/customeros/mailbroker/internal/utils"
)

const RequestIdHeader = "X-Request-Id"

// RequestIdMiddleware reuses the caller's X-Request-Id or assigns a new one, and echoes it back.
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := strings.TrimSpace(c.GetHeader(RequestIdHeader))
		if requestId == "" {
			requestId = uuid.NewString()
		}

		c.Set(utils.RequestIdKey, requestId)
		c.Header(RequestIdHeader, requestId)
		c.Next()
	}
}

// CustomContextMiddleware adds custom context to all requests
func CustomContextMiddleware(appSource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := utils.WithCustomContextFromGinRequest(c, appSource)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
