package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReconcileRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_runs_total",
		Help: "Total number of reconciliation runs by outcome",
	}, []string{"outcome"})

	ParamParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "param_parse_failures_total",
		Help: "Total number of pricing parameter strings rejected",
	})

	ReportChunks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "report_chunks_per_run",
		Help:    "Number of report segments produced per reconciliation run",
		Buckets: []float64{1, 2, 5, 10, 25, 50},
	})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	CatalogItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_items",
		Help: "Number of items in the loaded catalog index",
	})

	DBInsertRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "db_insert_total",
		Help: "Total number of records inserted into DB",
	}, []string{"table"})
)
