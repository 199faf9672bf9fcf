package mnistknn

import (
	"log/slog"
	"runtime"
	"time"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	concurrency      int
	queryParallelism int
	progressInterval time.Duration
}

// Option configures Classifier construction.
type Option func(*options)

// WithMetricsCollector configures metrics collection for predictions.
// Pass nil to disable metrics collection.
//
// Example with basic in-memory metrics:
//
//	metrics := &mnistknn.BasicMetricsCollector{}
//	clf, _ := mnistknn.New(cfg, data, mnistknn.WithMetricsCollector(metrics))
//	// ... use clf ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mnistknn.NewJSONLogger(slog.LevelInfo)
//	clf, _ := mnistknn.New(cfg, data, mnistknn.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithConcurrency bounds the number of queries predicted in parallel.
// Values below 1 fall back to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithQueryParallelism splits the distance pass of a single query across n
// goroutines. It pays off when few queries run against a large training
// partition. Values below 2 keep the pass sequential.
func WithQueryParallelism(n int) Option {
	return func(o *options) {
		o.queryParallelism = n
	}
}

// WithProgressInterval sets how often batch progress is logged.
// Zero disables progress records.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		progressInterval: 5 * time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}
