// Package obs holds observability wiring: the shared logger and HTTP
// metrics.
package obs

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewLogger builds the production logger used across the service.
func NewLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

// RequestLogger emits one structured line per handled request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("clientIp", c.ClientIP()),
		)
	}
}
