// Package metrics defines and registers the custom Prometheus metrics of the
// OA client. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default registry on import; the console exposes
// them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "oaclient"

// ── Backend request metrics ───────────────────────────────────────────────────

// APIRequestsTotal counts completed backend calls.
// Labels:
//   - endpoint: the request name (e.g. "login", "workers", "meeting_rooms")
//   - outcome: "ok" or the failure kind (e.g. "unauthorized", "network_error")
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend requests, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// APIFallbacksTotal counts responses substituted with fallback data.
// Label:
//   - endpoint: the request name
var APIFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_fallbacks_total",
		Help:      "Total number of failed backend requests answered with fallback data.",
	},
	[]string{"endpoint"},
)

// APIRequestDuration measures backend round trips, including body decoding.
// Label:
//   - endpoint: the request name
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of backend requests from send to decoded envelope.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login flow completions.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionCorruptionsTotal counts persisted sessions discarded as corrupt.
var SessionCorruptionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_corruptions_total",
		Help:      "Total number of persisted sessions cleared because they failed to decode.",
	},
)

// ── Connection status ─────────────────────────────────────────────────────────

// ConnectionState is 1 for the current connection state and 0 for the others.
// Label:
//   - state: "unknown", "online" or "offline"
var ConnectionState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connection_state",
		Help:      "Current backend connection state (1 = active state).",
	},
	[]string{"state"},
)

// SetConnectionState flips the ConnectionState gauge to state.
func SetConnectionState(state string) {
	for _, s := range []string{"unknown", "online", "offline"} {
		v := 0.0
		if s == state {
			v = 1
		}
		ConnectionState.WithLabelValues(s).Set(v)
	}
}
