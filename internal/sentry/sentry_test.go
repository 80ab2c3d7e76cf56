package sentry

import (
	"strings"
	"testing"
)

func TestInitialize_DisabledWithoutToken(t *testing.T) {
	if err := Initialize(Config{}); err != nil {
		t.Errorf("Initialize() with empty token error = %v, want nil", err)
	}
}

func TestInitialize_RequiresHost(t *testing.T) {
	err := Initialize(Config{Token: "tok-123"})
	if err == nil {
		t.Fatal("Initialize() expected error when host is missing")
	}
	if !strings.Contains(err.Error(), "host") {
		t.Errorf("error %q does not mention the missing host", err)
	}
}

func TestInitialize_BuildsDSN(t *testing.T) {
	err := Initialize(Config{
		Token:       "tok-123",
		Host:        "errors.betterstack.com",
		Environment: "test",
		SampleRate:  0.5,
	})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !IsEnabled() {
		t.Error("IsEnabled() = false after successful initialization")
	}
}
