// Package telemetry exposes Prometheus metrics for the game loop, the
// SSH server and the spectator HTTP server.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/jump-quest/internal/core"
)

// Labels are bounded: event kinds, modes, cue names, session origins and
// route patterns. Never player names.
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jumpquest_tick_duration_seconds",
		Help:    "Time spent in one simulation step",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jumpquest_render_duration_seconds",
		Help:    "Time spent rendering a frame",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.02, 0.033},
	})

	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jumpquest_events_total",
		Help: "Gameplay events by kind and mode",
	}, []string{"kind", "mode"})

	cuesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jumpquest_cues_total",
		Help: "Sound cues played",
	}, []string{"cue"})

	sessionsActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "jumpquest_sessions_active",
		Help: "Running game sessions",
	}, []string{"origin"}) // "local", "ssh"

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jumpquest_connection_rejected_total",
		Help: "HTTP and websocket connections rejected",
	}, []string{"reason"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jumpquest_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jumpquest_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "jumpquest_spectators_active",
		Help: "Connected websocket spectators",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jumpquest_spectator_messages_total",
		Help: "Snapshots broadcast to spectators",
	})
)

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTick records simulation step timing.
func RecordTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

// RecordRender records frame render timing.
func RecordRender(d time.Duration) {
	renderDuration.Observe(d.Seconds())
}

// RecordEvent counts a gameplay event. Screen changes are not counted.
func RecordEvent(e core.Event) {
	if e.Kind == core.EventScreenChange {
		return
	}
	mode := e.Mode
	if mode == "" {
		mode = "none"
	}
	eventsTotal.WithLabelValues(e.Kind.String(), mode).Inc()
}

// RecordCue counts a played sound cue.
func RecordCue(c core.Cue) {
	cuesTotal.WithLabelValues(c.String()).Inc()
}

// SessionStarted marks a game session as running and returns the func
// that marks it finished.
func SessionStarted(origin string) func() {
	g := sessionsActive.WithLabelValues(origin)
	g.Inc()
	return g.Dec
}

// RecordConnectionRejected counts a rejected connection.
// reason is one of "rate_limit", "origin", "ws_total_limit", "ws_ip_limit".
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// RecordRequest records HTTP request metrics; endpoint is the route
// pattern, not the raw URL.
func RecordRequest(method, endpoint string, status int, d time.Duration) {
	requestLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
	requestTotal.WithLabelValues(method, endpoint, http.StatusText(status)).Inc()
}

// UpdateSpectators sets the connected spectator count.
func UpdateSpectators(n int) {
	wsConnectionsActive.Set(float64(n))
}

// IncrementSpectatorMessages counts one broadcast.
func IncrementSpectatorMessages() {
	wsMessagesTotal.Inc()
}
