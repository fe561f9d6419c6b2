// Package monitoring exposes the service's Prometheus metrics.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "drivethru_actions_accepted_total",
		Help: "Proposed order actions accepted by the reconciler.",
	}, []string{"action"})

	actionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "drivethru_actions_rejected_total",
		Help: "Proposed order actions rejected by the reconciler, by reason.",
	}, []string{"reason"})

	interpreterResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "drivethru_interpreter_results_total",
		Help: "Order interpreter replies by normalized status.",
	}, []string{"status"})

	interpreterLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "drivethru_interpreter_latency_seconds",
		Help:    "Latency of order interpreter calls.",
		Buckets: prometheus.DefBuckets,
	})

	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drivethru_orders_placed_total",
		Help: "Orders confirmed and fully placed against the store.",
	})

	restockItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "drivethru_restock_items_total",
		Help: "Items touched by the autonomous restock check, by outcome.",
	}, []string{"outcome"})
)

// ActionAccepted counts one accepted reconciler action.
func ActionAccepted(action string) {
	actionsAccepted.WithLabelValues(action).Inc()
}

// ActionRejected counts one rejected reconciler action.
func ActionRejected(reason string) {
	actionsRejected.WithLabelValues(reason).Inc()
}

// InterpreterObserved records one order-interpreter round trip.
func InterpreterObserved(status string, elapsed time.Duration) {
	interpreterResults.WithLabelValues(status).Inc()
	interpreterLatency.Observe(elapsed.Seconds())
}

// OrderPlaced counts one fully placed order.
func OrderPlaced() {
	ordersPlaced.Inc()
}

// RestockObserved records the outcome counts of one autonomous check pass.
func RestockObserved(restocked, failed int) {
	restockItems.WithLabelValues("restocked").Add(float64(restocked))
	restockItems.WithLabelValues("failed").Add(float64(failed))
}
