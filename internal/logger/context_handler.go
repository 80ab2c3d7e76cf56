package logger

import (
	"context"
	"log/slog"

	"github.com/studygate/partner-bot-go/internal/ctxutil"
)

// ContextHandler enriches every record with the tracing identifiers stored
// in the request context: partner_id, session_id and request_id. Call sites
// use the *Context slog methods and never pass these attributes by hand.
//
// Reference: https://betterstack.com/community/guides/logging/golang-contextual-logging/
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler wraps handler with context enrichment.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle copies the tracing identifiers from ctx onto the record. A
// canceled ctx still logs; it is read only for its values.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if v := ctxutil.GetPartnerID(ctx); v != "" {
		r.AddAttrs(slog.String("partner_id", v))
	}
	if v := ctxutil.GetSessionID(ctx); v != "" {
		r.AddAttrs(slog.String("session_id", v))
	}
	if v, ok := ctxutil.GetRequestID(ctx); ok && v != "" {
		r.AddAttrs(slog.String("request_id", v))
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs applies attrs to the wrapped handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup applies the group to the wrapped handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}
