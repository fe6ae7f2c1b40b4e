// Package monitoring tracks order-flow counters. Counts are exposed twice:
// through Prometheus collectors on the metrics port and as a plain snapshot
// for the stats endpoint.
package monitoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus collectors
var (
	ordersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "maitred_orders_created_total",
		Help: "Orders successfully registered with the order store",
	})

	dispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maitred_dispatches_total",
		Help: "Kitchen dispatch attempts by outcome",
	}, []string{"outcome"})

	ledgerAppends = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maitred_ledger_appends_total",
		Help: "Order ledger append attempts by outcome",
	}, []string{"outcome"})

	toolCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "maitred_tool_calls_total",
		Help: "Conversation tool calls by tool name",
	}, []string{"tool"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maitred_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Monitor collects order-flow metrics for the service
type Monitor struct {
	mu        sync.RWMutex
	counts    map[string]int64
	registry  *prometheus.Registry
	startTime time.Time
}

// New creates a monitor with its own Prometheus registry.
func New() *Monitor {
	registry := prometheus.NewRegistry()
	registry.MustRegister(ordersCreated, dispatches, ledgerAppends, toolCalls, requestDuration)

	return &Monitor{
		counts:    make(map[string]int64),
		registry:  registry,
		startTime: time.Now(),
	}
}

// Registry returns the Prometheus registry backing the metrics endpoint.
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOrderCreated counts a successful order creation.
func (m *Monitor) RecordOrderCreated() {
	if m == nil {
		return
	}
	ordersCreated.Inc()
	m.bump("orders_created")
}

// RecordDispatch counts a kitchen dispatch attempt.
func (m *Monitor) RecordDispatch(delivered bool) {
	if m == nil {
		return
	}
	if delivered {
		dispatches.WithLabelValues("delivered").Inc()
		m.bump("dispatches_delivered")
		return
	}
	dispatches.WithLabelValues("failed").Inc()
	m.bump("dispatches_failed")
}

// RecordLedgerAppend counts a ledger append attempt.
func (m *Monitor) RecordLedgerAppend(ok bool) {
	if m == nil {
		return
	}
	if ok {
		ledgerAppends.WithLabelValues("ok").Inc()
		m.bump("ledger_appends")
		return
	}
	ledgerAppends.WithLabelValues("failed").Inc()
	m.bump("ledger_failures")
}

// RecordToolCall counts one conversation tool invocation.
func (m *Monitor) RecordToolCall(tool string) {
	if m == nil {
		return
	}
	toolCalls.WithLabelValues(tool).Inc()
	m.bump(fmt.Sprintf("tool_calls_%s", tool))
}

// ObserveRequest records the latency of one HTTP request.
func (m *Monitor) ObserveRequest(method, route string, seconds float64) {
	if m == nil {
		return
	}
	requestDuration.WithLabelValues(method, route).Observe(seconds)
}

// Snapshot returns all current counters plus process uptime.
func (m *Monitor) Snapshot() map[string]interface{} {
	if m == nil {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Copy to avoid concurrent map access
	snapshot := make(map[string]interface{}, len(m.counts)+1)
	for k, v := range m.counts {
		snapshot[k] = v
	}
	snapshot["uptime_seconds"] = time.Since(m.startTime).Seconds()
	return snapshot
}

// Reset clears the snapshot counters. Prometheus collectors are cumulative
// and are left alone.
func (m *Monitor) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = make(map[string]int64)
}

func (m *Monitor) bump(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
}
