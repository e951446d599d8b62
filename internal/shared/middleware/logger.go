package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger writes one access-log line per request. POS terminal calls carry
// an X-Session-ID header, which is logged so a register session can be
// traced across cart and checkout calls.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency_ms", latency).
			Int("bytes", c.Writer.Size()).
			Str("ip", c.ClientIP())

		if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
			event = event.Str("session_id", sessionID)
		}

		event.Msg("HTTP Request")
	}
}
