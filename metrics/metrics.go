package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersPlaced    prometheus.Counter
	CartAdds        prometheus.Counter
	CartRemoves     prometheus.Counter
	RoutingFailures prometheus.Counter
	UploadFailures  prometheus.Counter
	RoutingLatency  prometheus.Histogram
	ActiveSessions  prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_placed_total"})
	cartAdds := prometheus.NewCounter(prometheus.CounterOpts{Name: "cart_adds_total"})
	cartRemoves := prometheus.NewCounter(prometheus.CounterOpts{Name: "cart_removes_total"})
	routingFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "routing_failures_total"})
	uploadFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "upload_failures_total"})
	routingLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "routing_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{Name: "active_sessions"})

	r.MustRegister(ordersPlaced, cartAdds, cartRemoves, routingFailures, uploadFailures, routingLatency, activeSessions)
	return &Registry{
		reg:             r,
		OrdersPlaced:    ordersPlaced,
		CartAdds:        cartAdds,
		CartRemoves:     cartRemoves,
		RoutingFailures: routingFailures,
		UploadFailures:  uploadFailures,
		RoutingLatency:  routingLatency,
		ActiveSessions:  activeSessions,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
