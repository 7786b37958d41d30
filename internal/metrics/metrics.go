package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	BillsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "bills_created_total",
		Help:      "Bills created, by payment type.",
	}, []string{"payment_type"})

	BillsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "bills_deleted_total",
		Help:      "Bills deleted with their stock restored.",
	})

	BillsPaid = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "bills_paid_total",
		Help:      "Bills marked as paid.",
	})

	BillRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "bill_rejections_total",
		Help:      "Bill creations refused, by reason.",
	}, []string{"reason"})

	LowStockAlerts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "low_stock_alerts_total",
		Help:      "Low stock alerts raised by stock changes.",
	})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "http_requests_total",
		Help:      "HTTP requests, by method, route pattern and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inventory",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		BillsCreated, BillsDeleted, BillsPaid, BillRejections, LowStockAlerts,
		HTTPRequests, HTTPDuration,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
