package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "internforge"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)

	AgentCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "agent_calls_total", Help: "LLM agent calls by agent and outcome."},
		[]string{"agent", "outcome"},
	)
	AgentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "agent_call_duration_seconds", Help: "LLM agent call latency.", Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60}},
		[]string{"agent"},
	)
	OutputRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "agent_output_rejected_total", Help: "Model outputs rejected by schema and stage."},
		[]string{"schema", "stage"},
	)

	PlanCompensations = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "plan_compensations_total", Help: "Plan generations rolled back after a failed write."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(
		RateLimitAllowed,
		RateLimitRejected,
		HTTPRequests,
		HTTPDuration,
		AgentCalls,
		AgentLatency,
		OutputRejected,
		PlanCompensations,
	)
}
