package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for authOperations.
const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// authOperations counts auth service calls by operation and outcome.
var authOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "auth_operations_total",
	Help: "Total number of auth service operations",
}, []string{"operation", "outcome"})

func recordOutcome(operation, outcome string) {
	authOperations.WithLabelValues(operation, outcome).Inc()
}
