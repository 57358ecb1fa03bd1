// Package middleware provides HTTP middleware for the FreshFold API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps request IDs taken from inbound headers.
const MaxRequestIDLength = 128

// TracingConfig configures the request tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns the tracing defaults.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "freshfold-backend",
		Enabled:     true,
	}
}

// Tracing returns tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin so every request gets a span named
// "METHOD route_pattern", then tags the span with the request id and,
// when auth middleware has run, the authenticated user and scope.
// Returns a pass-through handler when tracing is disabled.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	otel := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		otel(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			tagSpan(c, span)
		}
	}
}

// TracingAttributeInjector re-tags the current span after auth
// middleware has populated the context. Place it after both the
// tracing and JWT middleware.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			tagSpan(c, span)
		}
		c.Next()
	}
}

// SpanErrorMarker marks the request span as errored on 4xx/5xx
// responses. Place it after the tracing middleware.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}

		span.SetStatus(codes.Error, statusMessage(status))
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}

func statusMessage(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "Internal Server Error"
	case status == http.StatusUnauthorized:
		return "Unauthorized"
	case status == http.StatusForbidden:
		return "Forbidden"
	case status == http.StatusNotFound:
		return "Not Found"
	default:
		return "Client Error"
	}
}

func tagSpan(c *gin.Context, span trace.Span) {
	if requestID := spanRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if userID := GetJWTUserID(c); userID != "" {
		span.SetAttributes(attribute.String("user_id", userID))
	}
	if scope := GetJWTScope(c); scope != "" {
		span.SetAttributes(attribute.String("auth_scope", scope))
	}
}

// spanRequestID prefers the id assigned by the RequestID middleware and
// falls back to the inbound header, truncated to MaxRequestIDLength.
func spanRequestID(c *gin.Context) string {
	if v, ok := c.Get("request_id"); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}

	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		headerID = headerID[:MaxRequestIDLength]
	}
	return headerID
}
