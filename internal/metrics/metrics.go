package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ctfarena_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ctfarena_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// FlagSubmissions counts flag submission attempts by outcome
	FlagSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ctfarena_flag_submissions_total",
			Help: "Total number of flag submission attempts by correctness",
		},
		[]string{"correct"},
	)

	// PropagationFailures counts failed score propagation transactions
	PropagationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ctfarena_score_propagation_failures_total",
			Help: "Total number of failed score propagation transactions",
		},
	)

	// QuizRegrades counts quiz regrade transactions
	QuizRegrades = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ctfarena_quiz_regrades_total",
			Help: "Total number of quiz regrade transactions",
		},
	)

	// RealtimeClients tracks connected standings feed clients
	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ctfarena_realtime_clients",
			Help: "Number of connected standings feed websocket clients",
		},
	)
)
