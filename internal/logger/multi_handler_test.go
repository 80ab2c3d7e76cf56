package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// collectHandler records every slog.Record it receives.
type collectHandler struct {
	mu      sync.Mutex
	level   slog.Level
	records []slog.Record
}

func (c *collectHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level
}

func (c *collectHandler) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
	return nil
}

func (c *collectHandler) WithAttrs(_ []slog.Attr) slog.Handler { return c }
func (c *collectHandler) WithGroup(_ string) slog.Handler      { return c }

func (c *collectHandler) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func TestMultiHandlerFanOut(t *testing.T) {
	a := &collectHandler{level: slog.LevelDebug}
	b := &collectHandler{level: slog.LevelDebug}

	log := slog.New(NewMultiHandler(a, b))
	log.Info("routing started")

	if a.count() != 1 || b.count() != 1 {
		t.Errorf("records = %d and %d, want 1 and 1", a.count(), b.count())
	}
}

func TestMultiHandlerRespectsTargetLevels(t *testing.T) {
	verbose := &collectHandler{level: slog.LevelDebug}
	quiet := &collectHandler{level: slog.LevelError}

	log := slog.New(NewMultiHandler(verbose, quiet))
	log.Info("stage one result")

	if verbose.count() != 1 {
		t.Errorf("verbose records = %d, want 1", verbose.count())
	}
	if quiet.count() != 0 {
		t.Errorf("quiet records = %d, want 0", quiet.count())
	}
}

func TestMultiHandlerSkipsNilHandlers(t *testing.T) {
	a := &collectHandler{level: slog.LevelDebug}

	m := NewMultiHandler(nil, a, nil)
	if err := m.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "ok", 0)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if a.count() != 1 {
		t.Errorf("records = %d, want 1", a.count())
	}
}

func TestMultiHandlerWithAttrsAppliesToAllTargets(t *testing.T) {
	var bufA, bufB bytes.Buffer
	a := slog.NewJSONHandler(&bufA, nil)
	b := slog.NewJSONHandler(&bufB, nil)

	log := slog.New(NewMultiHandler(a, b)).With("partner_id", "partner-7")
	log.Info("hello")

	for name, buf := range map[string]*bytes.Buffer{"a": &bufA, "b": &bufB} {
		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("target %s: %v", name, err)
		}
		if entry["partner_id"] != "partner-7" {
			t.Errorf("target %s partner_id = %v", name, entry["partner_id"])
		}
	}
}

func TestAsyncHandlerDeliversInBackground(t *testing.T) {
	sink := &collectHandler{level: slog.LevelDebug}
	h := NewAsyncHandler(sink, AsyncOptions{})

	log := slog.New(h)
	log.Info("shipped remotely")

	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if sink.count() != 1 {
		t.Errorf("delivered records = %d, want 1", sink.count())
	}
}

func TestAsyncHandlerDropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	slow := &blockingHandler{release: block}
	h := NewAsyncHandler(slow, AsyncOptions{BufferSize: 1, FlushTimeout: 50 * time.Millisecond})

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0)
	for range 10 {
		_ = h.Handle(context.Background(), rec)
	}
	close(block)

	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if got := h.queue.dropped.Load(); got == 0 {
		t.Error("expected dropped records when the queue is full")
	}
}

func TestAsyncHandlerShutdownIdempotent(t *testing.T) {
	h := NewAsyncHandler(&collectHandler{level: slog.LevelDebug}, AsyncOptions{})

	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestAsyncHandlerIgnoresRecordsAfterShutdown(t *testing.T) {
	sink := &collectHandler{level: slog.LevelDebug}
	h := NewAsyncHandler(sink, AsyncOptions{})

	if err := h.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "late", 0)); err != nil {
		t.Fatalf("Handle after shutdown: %v", err)
	}
	if sink.count() != 0 {
		t.Errorf("records after shutdown = %d, want 0", sink.count())
	}
}

func TestMultiHandlerEnabled(t *testing.T) {
	m := NewMultiHandler(
		&collectHandler{level: slog.LevelError},
		&collectHandler{level: slog.LevelInfo},
	)

	if !m.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled when one target accepts it")
	}
	if m.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled when no target accepts it")
	}
}

// blockingHandler stalls Handle until release is closed.
type blockingHandler struct {
	release chan struct{}
}

func (b *blockingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (b *blockingHandler) Handle(_ context.Context, _ slog.Record) error {
	<-b.release
	return nil
}

func (b *blockingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return b }
func (b *blockingHandler) WithGroup(_ string) slog.Handler      { return b }
