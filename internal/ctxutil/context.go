// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	partnerIDKey contextKey = "ctxutil.partnerID"
	sessionIDKey contextKey = "ctxutil.sessionID"
	requestIDKey contextKey = "ctxutil.requestID"
)

// WithPartnerID adds a partner ID to the context.
// Partner ID comes from the authenticated API caller and is used for
// the per-partner LLM budget and log correlation.
func WithPartnerID(ctx context.Context, partnerID string) context.Context {
	return context.WithValue(ctx, partnerIDKey, partnerID)
}

// GetPartnerID retrieves the partner ID from the context.
// Returns the partner ID if found, empty string otherwise.
func GetPartnerID(ctx context.Context) string {
	if v := ctx.Value(partnerIDKey); v != nil {
		if partnerID, ok := v.(string); ok && partnerID != "" {
			return partnerID
		}
	}
	return ""
}

// WithSessionID adds a session ID to the context.
// Session ID identifies one conversation thread between a partner's staff
// member and the assistant.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID retrieves the session ID from the context.
// Returns the session ID if found, empty string otherwise.
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(sessionIDKey); v != nil {
		if sessionID, ok := v.(string); ok && sessionID != "" {
			return sessionID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context for tracing.
// Request ID is generated per HTTP request for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}
