package logger

import (
	"context"
	"log/slog"
)

// Common context keys - use a struct to prevent conflicts
type contextKey struct {
	name string
}

var (
	logAttrsKey      = contextKey{"log_attrs"}
	requestLoggerKey = contextKey{"request_logger"}
)

// ContextWithLogAttrs allows handlers to add attributes to the final request log.
//
// The context values are added to a shared slice that is used by the
// RequestLogging middleware to create the final log message for the http request.
//
// Use this function to add useful tracking information to the final request
// log, for example the account_id of the authenticated user.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if attrPtr, ok := ctx.Value(logAttrsKey).(*[]slog.Attr); ok {
		*attrPtr = append(*attrPtr, attrs...)
		return ctx
	}
	// programming error - this should not happen
	slog.Warn("ContextWithLogAttrs called on context without shared log attributes slice")
	return ctx
}

func ContextLogAttrs(ctx context.Context) []slog.Attr {
	if attrPtr, ok := ctx.Value(logAttrsKey).(*[]slog.Attr); ok {
		return *attrPtr
	}

	// this indicates a programming error
	slog.Warn("ContextLogAttrs called on context without shared log attributes slice")
	return nil
}

// ContextRequestLogger retrieves the request-scoped logger from context.
//
// The logger is used by handlers and middleware that need to create
// intermediary log messages before the request finishes. Entries include the
// request_id.
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(requestLoggerKey).(*slog.Logger); ok {
		return logger
	}

	// Fallback to default logger if no request logger in context
	slog.Warn("ContextRequestLogger called on context without request logger - using default logger")
	return slog.Default()
}
