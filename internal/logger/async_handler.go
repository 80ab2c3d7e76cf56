package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	asyncQueueSize    = 1024
	asyncDrainTimeout = 5 * time.Second
)

// AsyncOptions configures the async log pipeline.
type AsyncOptions struct {
	BufferSize   int
	FlushTimeout time.Duration
}

type queuedRecord struct {
	ctx    context.Context
	record slog.Record
	next   slog.Handler
}

// asyncQueue is the delivery state shared by an AsyncHandler and every
// handler derived from it via WithAttrs or WithGroup.
type asyncQueue struct {
	ch      chan queuedRecord
	drained chan struct{}
	timeout time.Duration
	stopped atomic.Bool
	dropped atomic.Uint64
}

func (q *asyncQueue) deliver() {
	defer close(q.drained)
	for rec := range q.ch {
		_ = rec.next.Handle(rec.ctx, rec.record)
	}
}

func (q *asyncQueue) enqueue(ctx context.Context, r slog.Record, next slog.Handler) {
	if q.stopped.Load() {
		return
	}
	select {
	case q.ch <- queuedRecord{ctx: ctx, record: r, next: next}:
	default:
		q.dropped.Add(1)
	}
}

func (q *asyncQueue) shutdown(ctx context.Context) error {
	if q.stopped.Swap(true) {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	close(q.ch)
	select {
	case <-q.drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AsyncHandler decouples log shipping from the request path. Records are
// enqueued and delivered by a single background goroutine; when the queue
// is full the record is dropped rather than blocking the caller.
type AsyncHandler struct {
	next  slog.Handler
	queue *asyncQueue
}

// NewAsyncHandler wraps next with an async delivery queue.
func NewAsyncHandler(next slog.Handler, opts AsyncOptions) *AsyncHandler {
	size := opts.BufferSize
	if size <= 0 {
		size = asyncQueueSize
	}
	timeout := opts.FlushTimeout
	if timeout <= 0 {
		timeout = asyncDrainTimeout
	}

	q := &asyncQueue{
		ch:      make(chan queuedRecord, size),
		drained: make(chan struct{}),
		timeout: timeout,
	}
	go q.deliver()

	return &AsyncHandler{next: next, queue: q}
}

// Enabled defers to the wrapped handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle enqueues the record for background delivery. It never blocks.
func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.next.Enabled(ctx, r.Level) {
		return nil
	}
	h.queue.enqueue(ctx, r.Clone(), h.next)
	return nil
}

// WithAttrs returns a handler sharing this queue with attrs applied to the
// wrapped handler.
func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), queue: h.queue}
}

// WithGroup returns a handler sharing this queue with the group applied to
// the wrapped handler.
func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), queue: h.queue}
}

// Shutdown stops accepting records and waits for the queue to drain, up to
// the configured flush timeout or the context deadline.
func (h *AsyncHandler) Shutdown(ctx context.Context) error {
	if h == nil || h.queue == nil {
		return nil
	}
	return h.queue.shutdown(ctx)
}
