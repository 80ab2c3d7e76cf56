package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m.RouteRequestsTotal == nil {
		t.Error("RouteRequestsTotal should be initialized")
	}
	if m.LLMTotal == nil {
		t.Error("LLMTotal should be initialized")
	}
	if m.CatalogMatchTotal == nil {
		t.Error("CatalogMatchTotal should be initialized")
	}

	// Recording must not panic and must show up in the registry.
	m.RecordRoute("FEES", "answered", 0.02)
	m.RecordConfidence(0.8)
	m.RecordClarification("degree_level")
	m.RecordLLM("groq", "success", 0.4)
	m.RecordLLMFallback("groq", "cerebras", 1.2)
	m.RecordCatalogMatch("university", "confident")
	m.RecordSnapshotRefresh("success")
	m.RecordCacheHit("snapshot")
	m.RecordCacheMiss("snapshot")
	m.RecordFAQSearch("hit")
	m.RecordRateLimiterDrop("llm")
	m.RecordHTTPError("timeout", "router")

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected registered metric families")
	}
}

func TestNilReceiverSafe(t *testing.T) {
	var m *Metrics
	// All record helpers must tolerate a nil receiver so metrics stay optional.
	m.RecordRoute("FEES", "answered", 0.02)
	m.RecordConfidence(0.5)
	m.RecordClarification("target")
	m.RecordLLM("gemini", "error", 1)
	m.RecordLLMFallback("a", "b", 0)
	m.RecordCatalogMatch("major", "none")
	m.RecordSnapshotRefresh("error")
	m.RecordCacheHit("snapshot")
	m.RecordCacheMiss("snapshot")
	m.RecordFAQSearch("miss")
	m.RecordRateLimiterDrop("partner")
	m.RecordHTTPError("bad_request", "server")
}
