// Package observability provides Prometheus metrics for the portal.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gamehub/gamehub-go/internal/model"
)

// Auth event labels
const (
	AuthEventSignup = "signup"
	AuthEventLogin  = "login"
)

// Metrics contains the portal's Prometheus collectors.
// All recording methods are safe to call on a nil *Metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthEventsTotal *prometheus.CounterVec
	GamePlaysTotal  *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the portal metrics on a fresh registry, along with
// the standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamehub_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gamehub_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamehub_auth_events_total",
				Help: "Total number of signup and login attempts by outcome",
			},
			[]string{"event", "outcome"},
		),
		GamePlaysTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamehub_game_plays_total",
				Help: "Total number of game sessions started by game",
			},
			[]string{"game_id"},
		),
		registry: reg,
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.AuthEventsTotal,
		m.GamePlaysTotal,
	)

	return m
}

// Handler returns the /metrics exposition handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one completed HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuth records the outcome of a signup or login attempt
func (m *Metrics) RecordAuth(event string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.AuthEventsTotal.WithLabelValues(event, outcome).Inc()
}

// RecordPlay records a started game session
func (m *Metrics) RecordPlay(gameID model.GameID) {
	if m == nil {
		return
	}
	m.GamePlaysTotal.WithLabelValues(string(gameID)).Inc()
}
