// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "outfitai"

// Relay delivery outcomes.
const (
	DeliveryLive     = "live"
	DeliveryDeferred = "deferred"
)

// Metrics groups every collector the server updates.
type Metrics struct {
	AuthRejections  *prometheus.CounterVec
	PresenceOnline  prometheus.Gauge
	Relays          *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	WebsocketEvents *prometheus.CounterVec
}

// New registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AuthRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_rejections_total",
			Help:      "Requests rejected by the session gate, by reason.",
		}, []string{"reason"}),

		PresenceOnline: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "presence_online",
			Help:      "Usernames with a registered live connection.",
		}),

		Relays: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_total",
			Help:      "Persisted chat messages by delivery outcome.",
		}, []string{"delivery"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		WebsocketEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "websocket_events_total",
			Help:      "Inbound websocket events by name.",
		}, []string{"event"}),
	}
}
