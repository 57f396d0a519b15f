package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests      *prometheus.CounterVec
	Latency       *prometheus.HistogramVec
	OrdersCreated prometheus.Counter
}

func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shop",
		Subsystem: service,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shop",
		Subsystem: service,
		Name:      "orders_created_total",
		Help:      "Total number of orders created via checkout.",
	})

	prometheus.MustRegister(requests, latency, ordersCreated)
	return &ServerMetrics{Requests: requests, Latency: latency, OrdersCreated: ordersCreated}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
