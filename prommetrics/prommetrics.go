// Package prommetrics exports classifier metrics through Prometheus.
//
// Batch runs are short-lived, so besides serving a registry the collector can
// write a node_exporter textfile:
//
//	col := prommetrics.New(prometheus.NewRegistry())
//	clf, _ := mnistknn.New(cfg, data, mnistknn.WithMetricsCollector(col))
//	// ... run ...
//	_ = col.WriteTextfile("/var/lib/node_exporter/mnistknn.prom")
package prommetrics

import (
	"time"

	"github.com/hupe1980/mnistknn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ mnistknn.MetricsCollector = (*Collector)(nil)

// Collector implements mnistknn.MetricsCollector on a Prometheus registry.
type Collector struct {
	gatherer prometheus.Gatherer

	QueriesTotal         *prometheus.CounterVec
	QueryDurationSeconds prometheus.Histogram
	BatchesTotal         prometheus.Counter
	BatchQueriesTotal    *prometheus.CounterVec
	BatchDurationSeconds prometheus.Histogram
	Accuracy             *prometheus.GaugeVec
	LoadsTotal           *prometheus.CounterVec
	LoadedSamples        prometheus.Gauge
	LoadDurationSeconds  prometheus.Histogram
}

// New registers the classifier metrics on reg.
func New(reg *prometheus.Registry) *Collector {
	f := promauto.With(reg)

	return &Collector{
		gatherer: reg,
		QueriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mnistknn_queries_total",
				Help: "Total number of single-sample predictions",
			},
			[]string{"status"},
		),
		QueryDurationSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mnistknn_query_duration_seconds",
				Help:    "Duration of single-sample predictions",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
		),
		BatchesTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "mnistknn_batches_total",
				Help: "Total number of batch predictions",
			},
		),
		BatchQueriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mnistknn_batch_queries_total",
				Help: "Queries processed in batch predictions",
			},
			[]string{"status"},
		),
		BatchDurationSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mnistknn_batch_duration_seconds",
				Help:    "Duration of batch predictions",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
			},
		),
		Accuracy: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mnistknn_accuracy_ratio",
				Help: "Last computed accuracy per partition",
			},
			[]string{"partition"},
		),
		LoadsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mnistknn_dataset_loads_total",
				Help: "Total number of dataset loads",
			},
			[]string{"status"},
		),
		LoadedSamples: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "mnistknn_dataset_samples",
				Help: "Number of samples in the last loaded dataset",
			},
		),
		LoadDurationSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mnistknn_dataset_load_duration_seconds",
				Help:    "Time taken to fetch and decode the dataset",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordQuery implements mnistknn.MetricsCollector.
func (c *Collector) RecordQuery(duration time.Duration, err error) {
	c.QueriesTotal.WithLabelValues(status(err)).Inc()
	c.QueryDurationSeconds.Observe(duration.Seconds())
}

// RecordBatch implements mnistknn.MetricsCollector.
func (c *Collector) RecordBatch(count, failed int, duration time.Duration) {
	c.BatchesTotal.Inc()
	c.BatchQueriesTotal.WithLabelValues("ok").Add(float64(count - failed))
	c.BatchQueriesTotal.WithLabelValues("error").Add(float64(failed))
	c.BatchDurationSeconds.Observe(duration.Seconds())
}

// RecordAccuracy implements mnistknn.MetricsCollector.
func (c *Collector) RecordAccuracy(partition string, accuracy float64) {
	c.Accuracy.WithLabelValues(partition).Set(accuracy)
}

// RecordLoad implements mnistknn.MetricsCollector.
func (c *Collector) RecordLoad(samples int, duration time.Duration, err error) {
	c.LoadsTotal.WithLabelValues(status(err)).Inc()
	c.LoadDurationSeconds.Observe(duration.Seconds())
	if err == nil {
		c.LoadedSamples.Set(float64(samples))
	}
}

// WriteTextfile writes all registered metrics in the text exposition format
// for the node_exporter textfile collector. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.gatherer)
}
