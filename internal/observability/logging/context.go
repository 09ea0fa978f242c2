package logging

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	moduleKey
)

// Module names the component a log line came from, e.g. "reminder" or
// "scheduler".
type Module string

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}

	return ""
}

// ValidateAndExtractRequestID keeps a caller supplied id when it is safe to
// log and mints a new one otherwise.
func ValidateAndExtractRequestID(raw string) string {
	if requestIDPattern.MatchString(raw) {
		return raw
	}

	return NewRequestID()
}

func NewRequestID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

func ModuleFromContext(ctx context.Context) Module {
	if v, ok := ctx.Value(moduleKey).(Module); ok {
		return v
	}

	return ""
}
