package shared

import (
	"context"
	"encoding/hex"
	"regexp"

	"github.com/google/uuid"
)

// ContextKey is the type of request-scoped context keys.
type ContextKey string

// Context keys for request-scoped values.
const (
	// UserIDContextKey holds the authenticated caller's uuid.UUID.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request's trace id.
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries a trace id in from callers and back out to them.
	TraceIDHeader = "X-Trace-ID"
)

var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// NewTraceID returns a random 32 character hex trace id.
func NewTraceID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// ValidTraceID reports whether a caller-supplied trace id is safe to reuse.
func ValidTraceID(id string) bool {
	return traceIDPattern.MatchString(id)
}

// WithTraceID stores traceID in ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithUserID stores the authenticated caller in ctx.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// GetUserID returns the authenticated caller, or false if there is none.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
