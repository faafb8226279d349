package metrics

import "github.com/prometheus/client_golang/prometheus"

// PlatformMetrics exposes counters/histograms for messaging and quote flows.
type PlatformMetrics struct {
	messagesTotal  *prometheus.CounterVec
	quotesTotal    *prometheus.CounterVec
	webhookLatency *prometheus.HistogramVec
}

func NewPlatformMetrics(reg prometheus.Registerer) *PlatformMetrics {
	m := &PlatformMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloomwell",
			Subsystem: "messaging",
			Name:      "messages_total",
			Help:      "Total chat messages appended, by attachment kind",
		}, []string{"kind"}),
		quotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bloomwell",
			Subsystem: "quotes",
			Name:      "emitted_total",
			Help:      "Total quotes emitted, by delivery channel",
		}, []string{"channel"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bloomwell",
			Subsystem: "payments",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of Stripe webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.quotesTotal, m.webhookLatency)
	return m
}

// MessageSent satisfies the messages handler's metrics recorder.
func (m *PlatformMetrics) MessageSent(kind string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(kind).Inc()
}

func (m *PlatformMetrics) QuoteEmitted(channel string) {
	if m == nil {
		return
	}
	m.quotesTotal.WithLabelValues(channel).Inc()
}

func (m *PlatformMetrics) ObserveWebhookLatency(eventType string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(eventType).Observe(seconds)
}
