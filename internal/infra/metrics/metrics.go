package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawmat_queries_total",
		Help: "Warehouse queries issued, by query name.",
	}, []string{"query"})

	QuerySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rawmat_query_seconds",
		Help:    "Warehouse query latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	ReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawmat_reports_total",
		Help: "Generated reports by result.",
	}, []string{"result"})

	ReportSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rawmat_report_seconds",
		Help:    "Full workbook build time.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
	})
)

// ObserveQuery считает запрос и возвращает функцию, которую надо вызвать по завершении.
//
//	defer metrics.ObserveQuery("movements_by_material")()
func ObserveQuery(name string) func() {
	QueriesTotal.WithLabelValues(name).Inc()
	start := time.Now()
	return func() {
		QuerySeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}
