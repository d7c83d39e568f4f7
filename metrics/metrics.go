// Package metrics exports Prometheus metrics for dispatched actions.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bjaus/action"
)

// Outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeUnknown   = "unknown_key"
	unregisteredKey  = "unregistered"
	defaultNamespace = "action"
)

// Metrics holds the dispatch collectors.
type Metrics struct {
	DispatchTotal    *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	InvokerFaults    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: defaultNamespace,
				Name:      "dispatch_total",
				Help:      "Total number of dispatched actions by outcome",
			},
			[]string{"key", "outcome"},
		),
		DispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: defaultNamespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Duration of action execution in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"key"},
		),
		InvokerFaults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: defaultNamespace,
				Name:      "invoker_faults_total",
				Help:      "Total number of errors and panics raised by invokers",
			},
			[]string{"invoker"},
		),
	}
}

// Hooks returns registry options that record every call.
//
// Unknown keys are counted under a single "unregistered" key label so
// callers cannot grow label cardinality with arbitrary keys.
func (m *Metrics) Hooks() action.Option {
	return action.WithOptions(
		action.WithOnSuccess(func(ctx context.Context, key, id string, d time.Duration) {
			m.DispatchTotal.WithLabelValues(key, OutcomeSuccess).Inc()
			m.DispatchDuration.WithLabelValues(key).Observe(d.Seconds())
		}),
		action.WithOnFailure(func(ctx context.Context, key, id, msg string, d time.Duration) {
			m.DispatchTotal.WithLabelValues(key, OutcomeFailure).Inc()
			m.DispatchDuration.WithLabelValues(key).Observe(d.Seconds())
		}),
		action.WithOnNoHandler(func(ctx context.Context, key, id string) {
			m.DispatchTotal.WithLabelValues(unregisteredKey, OutcomeUnknown).Inc()
		}),
		action.WithOnInvokerFault(func(ctx context.Context, key, id string, fault *action.InvokerFault) {
			m.InvokerFaults.WithLabelValues(string(fault.Invoker)).Inc()
		}),
	)
}
