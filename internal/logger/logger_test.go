package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func parseLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parsing log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestNewWithWriterLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{"debug enables debug records", "debug", true},
		{"info suppresses debug records", "info", false},
		{"unknown level falls back to info", "verbose", false},
		{"empty level falls back to info", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(tt.level, &buf)

			log.Debug("probe")
			if got := buf.Len() > 0; got != tt.wantDebug {
				t.Errorf("debug record emitted = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info("catalog refreshed")

	entry := parseLine(t, &buf)
	for _, field := range []string{"timestamp", "level", "message"} {
		if _, ok := entry[field]; !ok {
			t.Errorf("log line missing %q field", field)
		}
	}
	if entry["message"] != "catalog refreshed" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestWarnLevelRendersAsWarning(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Warn("extraction degraded")

	entry := parseLine(t, &buf)
	if entry["level"] != "warning" {
		t.Errorf("level = %v, want warning", entry["level"])
	}
}

func TestWithModuleAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithModule("router").WithRequestID("req-9").Info("turn routed")

	entry := parseLine(t, &buf)
	if entry["module"] != "router" {
		t.Errorf("module = %v, want router", entry["module"])
	}
	if entry["request_id"] != "req-9" {
		t.Errorf("request_id = %v, want req-9", entry["request_id"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithError(errors.New("snapshot load failed")).Error("refresh aborted")

	entry := parseLine(t, &buf)
	if entry["error"] != "snapshot load failed" {
		t.Errorf("error = %v", entry["error"])
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithFields(map[string]any{"intent": "FEES", "confidence": 0.85}).Info("resolved")

	entry := parseLine(t, &buf)
	if entry["intent"] != "FEES" {
		t.Errorf("intent = %v, want FEES", entry["intent"])
	}
	if entry["confidence"] != 0.85 {
		t.Errorf("confidence = %v, want 0.85", entry["confidence"])
	}
}

func TestFormattedHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Infof("seeded %d universities", 10)

	entry := parseLine(t, &buf)
	if entry["message"] != "seeded 10 universities" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestShutdownWithoutRemote(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	if err := log.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown without remote backend = %v, want nil", err)
	}
}

func TestDerivedLoggersShareOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	scoped := log.WithModule("faq").WithField("query", "hsk requirement")
	scoped.Info("search done")
	scoped.Info("second search")

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 2 {
		t.Errorf("got %d lines, want 2", lines)
	}
}
