package mnistknn

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with classifier-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithMetric adds a metric field to the logger.
func (l *Logger) WithMetric(metric string) *Logger {
	return &Logger{
		Logger: l.Logger.With("metric", metric),
	}
}

// LogQuery logs a single prediction.
func (l *Logger) LogQuery(ctx context.Context, position, class int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"position", position,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"position", position,
			"class", class,
		)
	}
}

// LogBatch logs the summary of a batch prediction.
func (l *Logger) LogBatch(ctx context.Context, partition string, count, failed int, elapsed time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "batch prediction completed with failures",
			"partition", partition,
			"total", count,
			"failed", failed,
			"success", count-failed,
			"elapsed", elapsed,
		)
	} else {
		l.InfoContext(ctx, "batch prediction completed",
			"partition", partition,
			"count", count,
			"elapsed", elapsed,
		)
	}
}

// LogProgress logs how many queries of a batch are done.
func (l *Logger) LogProgress(ctx context.Context, partition string, done, total int) {
	l.InfoContext(ctx, "batch prediction progress",
		"partition", partition,
		"done", done,
		"total", total,
	)
}

// LogAccuracy logs a scored partition.
func (l *Logger) LogAccuracy(ctx context.Context, partition string, correct, total int, accuracy float64) {
	l.InfoContext(ctx, "accuracy",
		"partition", partition,
		"correct", correct,
		"total", total,
		"accuracy", accuracy,
	)
}

// LogLoad logs a dataset load.
func (l *Logger) LogLoad(ctx context.Context, source string, samples, classes int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"source", source,
			"samples", samples,
			"classes", classes,
			"elapsed", elapsed,
		)
	}
}

// progress throttles LogProgress to at most one record per interval.
// The final call always logs.
type progress struct {
	logger    *Logger
	partition string
	total     int
	sometimes *rate.Sometimes
}

func newProgress(logger *Logger, partition string, total int, interval time.Duration) *progress {
	if interval <= 0 {
		return nil
	}
	return &progress{
		logger:    logger,
		partition: partition,
		total:     total,
		sometimes: &rate.Sometimes{Interval: interval},
	}
}

func (p *progress) report(ctx context.Context, done int) {
	if p == nil {
		return
	}
	if done == p.total {
		p.logger.LogProgress(ctx, p.partition, done, p.total)
		return
	}
	p.sometimes.Do(func() {
		p.logger.LogProgress(ctx, p.partition, done, p.total)
	})
}
