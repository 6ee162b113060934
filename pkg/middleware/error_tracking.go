package middleware

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware attaches a Sentry hub to each request and reports panics.
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// ErrorHandler reports 5xx responses to Sentry. Place it after SentryMiddleware.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		statusCode := c.Writer.Status()
		if statusCode < 500 {
			return
		}

		hub := sentrygin.GetHubFromContext(c)
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
		}

		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetRequest(c.Request)
			scope.SetLevel(sentry.LevelError)
			scope.SetTag("http.method", c.Request.Method)
			scope.SetTag("http.status_code", fmt.Sprintf("%d", statusCode))
			scope.SetTag("endpoint", c.FullPath())
			if correlationID := GetCorrelationID(c); correlationID != "" {
				scope.SetTag("correlation_id", correlationID)
			}
			scope.SetContext("http", map[string]interface{}{
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_addr": c.ClientIP(),
			})

			if len(c.Errors) > 0 {
				for _, ginErr := range c.Errors {
					hub.CaptureException(ginErr.Err)
				}
				return
			}
			hub.CaptureMessage(fmt.Sprintf("HTTP %d: %s %s", statusCode, c.Request.Method, c.Request.URL.Path))
		})
	}
}
