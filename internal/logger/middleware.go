package logger

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

/*
This package implements two types of logging:

1. immediate request-scoped logging (ContextRequestLogger):
   - Use for events that occur during request processing

2. request completion logging (ContextWithLogAttrs):
   - Use for attributes that should appear in the final HTTP request log
*/

// RequestLogging is a middleware that logs HTTP requests
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip logging for health requests
			if strings.HasPrefix(r.URL.Path, "/health/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			requestID := middleware.GetReqID(r.Context())

			// Determine request component based on path
			var component string
			switch {
			case strings.HasPrefix(r.URL.Path, "/ui-api/"):
				component = "ui-api"
			case strings.HasPrefix(r.URL.Path, "/static/"):
				component = "static"
			default:
				component = "page"
			}

			// Create request-scoped logger with common fields
			requestLogger := logger.With(
				slog.String("request_id", requestID),
			)

			// shared slice for attributes that handlers can modify
			sharedAttrs := &[]slog.Attr{}

			// Store shared attributes in context
			ctx := context.WithValue(r.Context(), logAttrsKey, sharedAttrs)

			// Store request-scoped logger in context for handler use
			ctx = context.WithValue(ctx, requestLoggerKey, requestLogger)

			req := r.WithContext(ctx)

			// Wrap response writer to capture status
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, req)

			duration := time.Since(start)

			logAttrs := []slog.Attr{
				slog.String("type", "HTTP"),
				slog.Int("status", ww.Status()),
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("component", component),
			}

			// Add any attributes that were added to the context during request processing
			contextAttrs := ContextLogAttrs(req.Context())
			if len(contextAttrs) > 0 {
				logAttrs = append(logAttrs, contextAttrs...)
			}

			logAttrs = append(logAttrs,
				slog.Duration("duration", duration),
				slog.Int("bytes", ww.BytesWritten()),
			)

			// Log request completion with all attributes
			switch {
			case ww.Status() >= 500:
				logger.LogAttrs(r.Context(), slog.LevelError, "request completed", logAttrs...)
			case ww.Status() >= 400:
				logger.LogAttrs(r.Context(), slog.LevelWarn, "request completed", logAttrs...)
			default:
				logger.LogAttrs(r.Context(), slog.LevelInfo, "request completed", logAttrs...)
			}
		})
	}
}
