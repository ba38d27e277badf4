package http

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/salonflow/salonflow-admin/internal/util"
)

// RequestLogMiddleware logs each request with latency and status. Sensitive
// query parameters are masked before logging.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Round(time.Millisecond).String(),
			"client":  c.ClientIP(),
		})
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			entry = entry.WithField("query", util.MaskSensitiveQuery(rawQuery))
		}
		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
			return
		}
		entry.Info("request")
	}
}
