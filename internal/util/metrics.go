package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Table labels for catalog metrics.
const (
	TableCustomers = "customers"
	TableItems     = "items"
)

var (
	CatalogRecordsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_records_loaded_total",
		Help: "Total number of catalog records loaded",
	}, []string{"table"})

	CatalogRecordsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_records_rejected_total",
		Help: "Total number of catalog lines rejected",
	}, []string{"table", "reason"})

	OrdersAssembledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_assembled_total",
		Help: "Total number of orders assembled",
	})

	OrdersRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of order records discarded",
	}, []string{"reason"})

	LineItemsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "line_items_dropped_total",
		Help: "Total number of line items omitted from otherwise valid orders",
	}, []string{"reason"})

	ReportOrdersWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_orders_written_total",
		Help: "Total number of orders written to a report",
	})

	LookupItemsPurchasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lookup_items_purchased_total",
		Help: "Total number of items added in interactive lookups",
	})

	OrdersArchivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_archived_total",
		Help: "Total number of orders written to the archive database",
	})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Total number of order events published",
	}, []string{"status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
