package middleware

import (
	"time"

	"github.com/aikoandre/Chutes-Proxy/internal/logging"
	"github.com/aikoandre/Chutes-Proxy/internal/netutil"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs HTTP requests
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		// Handlers set these for chat requests; other routes log them as nil
		modelVal, _ := c.Get("model")
		upstreamVal, _ := c.Get("upstream_model")
		extras := log.Fields{
			"status":        status,
			"latency_ms":    logging.DurationMS(latency),
			"user_agent":    c.Request.UserAgent(),
			"method":        method,
			"path":          path,
			"model":         modelVal,
			"upstream":      upstreamVal,
			"client_source": netutil.ClassifySource(netutil.ClientIP(c.Request)),
		}
		logging.WithReq(c, extras).Info("http_request")
	}
}
