package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the application collectors. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	Registry      *prometheus.Registry
	EventsCreated *prometheus.CounterVec
	EventViews    *prometheus.CounterVec
	Logins        *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		EventsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maeum",
			Name:      "events_created_total",
			Help:      "Events created, by event type.",
		}, []string{"type"}),
		EventViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maeum",
			Name:      "event_views_total",
			Help:      "Public event page views, by event type.",
		}, []string{"type"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maeum",
			Name:      "logins_total",
			Help:      "Login attempts, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.EventsCreated,
		m.EventViews,
		m.Logins,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) EventCreated(eventType string) {
	if m == nil {
		return
	}
	m.EventsCreated.WithLabelValues(eventType).Inc()
}

func (m *Metrics) EventViewed(eventType string) {
	if m == nil {
		return
	}
	m.EventViews.WithLabelValues(eventType).Inc()
}

func (m *Metrics) Login(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.Logins.WithLabelValues(result).Inc()
}
