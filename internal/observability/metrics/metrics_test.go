package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPlatformMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPlatformMetrics(reg)
	m.MessageSent("quote_payment")
	m.QuoteEmitted("email")
	m.ObserveWebhookLatency("checkout.session.completed", 0.5)
}

func TestPlatformMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPlatformMetrics(reg)
	m.QuoteEmitted("pdf")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

func TestPlatformMetricsNilSafe(t *testing.T) {
	var m *PlatformMetrics
	m.MessageSent("text")
	m.QuoteEmitted("chat")
	m.ObserveWebhookLatency("event", 0.1)
}
