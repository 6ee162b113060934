package middleware

import (
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/ridematch/pkg/logger"
)

const (
	// CorrelationIDHeader carries the request ID in and out of the service.
	CorrelationIDHeader = "X-Request-ID"
	// AltCorrelationIDHeader is accepted from gateways that forward their own ID.
	AltCorrelationIDHeader = "X-Correlation-ID"
	// CorrelationIDKey is the gin context key for the request ID
	CorrelationIDKey = "correlation_id"

	maxCorrelationIDLen = 64
)

// CorrelationID adopts a well-formed inbound request ID or mints a UUID, then
// exposes it to handlers, the logger context, the Sentry scope and the response.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := inboundCorrelationID(c)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(CorrelationIDKey, id)
		c.Request = c.Request.WithContext(logger.ContextWithCorrelationID(c.Request.Context(), id))
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.Scope().SetTag(CorrelationIDKey, id)
		}
		c.Writer.Header().Set(CorrelationIDHeader, id)

		c.Next()
	}
}

func inboundCorrelationID(c *gin.Context) string {
	for _, header := range []string{CorrelationIDHeader, AltCorrelationIDHeader} {
		if id := strings.TrimSpace(c.GetHeader(header)); validCorrelationID(id) {
			return id
		}
	}
	return ""
}

// validCorrelationID accepts short tokens of letters, digits, '-', '_' and '.'
// so an ID can be echoed into headers and log fields unescaped.
func validCorrelationID(id string) bool {
	if id == "" || len(id) > maxCorrelationIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// GetCorrelationID returns the request ID set by CorrelationID.
func GetCorrelationID(c *gin.Context) string {
	if id := c.GetString(CorrelationIDKey); id != "" {
		return id
	}
	return logger.CorrelationIDFromContext(c.Request.Context())
}
