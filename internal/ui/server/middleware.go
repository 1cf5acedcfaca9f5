package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jub0bs/cors"
	"golang.org/x/time/rate"

	"github.com/dualcaster-deals/dualcaster/app/internal/logger"
)

// NewUIAPICORS builds the CORS policy for the /ui-api fragment endpoints.
// Same-origin browsers never trigger it; it only matters when the UI is
// served behind a separate origin from an embedding deployment.
func NewUIAPICORS(origins []string) (*cors.Middleware, error) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.NewMiddleware(cors.Config{
		Origins: origins,
		Methods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		RequestHeaders: []string{
			"Content-Type",
			"HX-Request",
			"HX-Target",
			"HX-Current-URL",
			"HX-Trigger",
		},
	})
}

// CORS adapts a pre-built cors.Middleware to the chi middleware signature
func CORS(middleware *cors.Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return middleware.Wrap(next)
	}
}

// SecurityHeaders adds the standard security headers to every response. The
// CSP permits the htmx script from unpkg and card images from any https host.
func SecurityHeaders(environment string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// for legacy support
			w.Header().Set("X-Frame-Options", "DENY")

			w.Header().Set("Content-Security-Policy",
				"default-src 'self'; script-src 'self' https://unpkg.com; img-src 'self' https: data:; frame-ancestors 'none';")

			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if environment == "prod" || environment == "staging" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimit limits the size of request bodies and adds the limit as a
// header for client awareness
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Max-Request-Size", strconv.FormatInt(maxBytes, 10))

			// Check Content-Length header first (if present)
			if r.ContentLength > maxBytes {
				reqLogger := logger.ContextRequestLogger(r.Context())
				reqLogger.Warn("Request size limit exceeded",
					slog.String("component", "RequestSizeLimit"),
					slog.Int64("content_length", r.ContentLength),
					slog.Int64("max_bytes", maxBytes),
				)

				http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
				return
			}

			// the reader enforces the limit for requests without Content-Length
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit limits requests per second across all callers. Used on the login
// and registration endpoints to slow down credential stuffing. If
// requestsPerSecond <= 0, rate limiting is disabled.
func RateLimit(requestsPerSecond int, burst int) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				reqLogger := logger.ContextRequestLogger(r.Context())
				reqLogger.Warn("Rate limit exceeded",
					slog.String("component", "RateLimit"),
					slog.String("remote_addr", r.RemoteAddr),
				)

				http.Error(w, "Too many requests. Please wait and try again.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
