package trivia

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestsTotal counts use-case outcomes; exported at /metrics.
var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "trivia_requests_total",
		Help: "Question bank use-case invocations by outcome.",
	},
	[]string{"use_case", "outcome"},
)

func observe(useCase, outcome string) {
	requestsTotal.WithLabelValues(useCase, outcome).Inc()
}
