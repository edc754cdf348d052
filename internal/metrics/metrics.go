// Package metrics exposes the marketplace's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wholesale"

// Metrics holds every collector, registered on a private registry so tests
// can build as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	QuotesTotal         prometheus.Counter
	OrdersPlacedTotal   prometheus.Counter
	OrdersRejected      *prometheus.CounterVec // reason
	LocationFallbacks   prometheus.Counter
	OrderStatusChanges  *prometheus.CounterVec // status
	HTTPRequestDuration *prometheus.HistogramVec
	GRPCRequestsTotal   *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		QuotesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Delivery quotes computed.",
		}),
		OrdersPlacedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders successfully placed.",
		}),
		OrdersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "Order placements rejected, by reason.",
		}, []string{"reason"}),
		LocationFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_fallbacks_total",
			Help:      "Quotes priced from the depot because the destination was unknown.",
		}),
		OrderStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Order status transitions, by new status.",
		}, []string{"status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		GRPCRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "gRPC requests, by method and status code.",
		}, []string{"method", "code"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.QuotesTotal,
		m.OrdersPlacedTotal,
		m.OrdersRejected,
		m.LocationFallbacks,
		m.OrderStatusChanges,
		m.HTTPRequestDuration,
		m.GRPCRequestsTotal,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFallback counts a destination that was replaced by the depot. It
// matches pricing.WithFallbackHook.
func (m *Metrics) ObserveFallback(string) {
	m.LocationFallbacks.Inc()
}
