package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of HTTP requests by method and route
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// Checkout outcomes
	OrdersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed successfully",
	})

	PaymentInitFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_init_failures_total",
		Help: "Total number of failed payment intent creations",
	})

	InsufficientStockTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insufficient_stock_rejections_total",
		Help: "Checkouts rejected because product stock ran out",
	})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		OrdersPlacedTotal,
		PaymentInitFailuresTotal,
		InsufficientStockTotal,
	)
}
