package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
	appprom "github.com/casetrace/casetrace/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/casetrace/casetrace/pkg/errors"
)

// requestIDHeader is echoed back on every response; an inbound value is
// reused so callers can correlate across retries.
const requestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key carrying the request ID.
const requestIDKey = "request_id"

// RequestIDMiddleware assigns each request a UUID unless the caller sent one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// LoggingMiddleware emits one structured access log line per request.
func LoggingMiddleware(logger logging.Logger) gin.HandlerFunc {
	logger = logger.Named("access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request handled",
			logging.String("request_id", c.GetString(requestIDKey)),
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("elapsed", time.Since(start)),
			logging.String("client", c.ClientIP()),
		)
	}
}

// MetricsMiddleware records request counts and durations.  The route
// template, not the raw path, is used as the label to keep cardinality flat.
func MetricsMiddleware(metrics *appprom.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}

// RecoveryMiddleware converts panics into a structured 500 response instead
// of tearing down the connection.
func RecoveryMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("handler panicked",
					logging.String("request_id", c.GetString(requestIDKey)),
					logging.String("path", c.Request.URL.Path),
					logging.Any("panic", r),
				)
				writeError(c, apperrors.Internal("internal server error"))
			}
		}()
		c.Next()
	}
}

// CORSMiddleware allows browser clients from any origin; the API carries no
// credentials or cookies.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
