// Command mnistknn loads the MNIST training files, splits them 80/10/10,
// classifies the testing partition with K-nearest-neighbors and prints the
// accuracy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hupe1980/mnistknn"
	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/mnist"
	"github.com/hupe1980/mnistknn/prommetrics"
	"github.com/hupe1980/mnistknn/resource"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "mnistknn:", err)
		os.Exit(1)
	}
}

func newLogger(cfg *Config, w io.Writer) *mnistknn.Logger {
	level, _ := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return mnistknn.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return mnistknn.NewLogger(slog.NewTextHandler(w, opts))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	start := time.Now()

	cfg, err := LoadConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := newLogger(&cfg, stderr)
	metrics := prommetrics.New(prometheus.NewRegistry())
	if cfg.MetricsTextfile != "" {
		defer func() {
			if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
				logger.Error("writing metrics textfile failed", "path", cfg.MetricsTextfile, "error", err)
			}
		}()
	}

	store, err := openStore(ctx, &cfg)
	if err != nil {
		return err
	}

	resources := resource.NewController(resource.Config{
		MemoryLimitBytes:     cfg.MemoryLimit,
		MaxConcurrentFetches: 2,
		IOLimitBytesPerSec:   cfg.IOLimit,
	})

	loadStart := time.Now()
	ds, err := mnist.Load(ctx, store, func(o *mnist.Options) {
		o.Images = cfg.ImagesFile
		o.Labels = cfg.LabelsFile
		o.MaxSamples = cfg.MaxSamples
		o.Logger = logger.Logger
		o.Resources = resources
	})
	loadElapsed := time.Since(loadStart)
	if err != nil {
		metrics.RecordLoad(0, loadElapsed, err)
		logger.LogLoad(ctx, cfg.Source, 0, 0, loadElapsed, err)
		return err
	}
	metrics.RecordLoad(ds.Len(), loadElapsed, nil)
	logger.LogLoad(ctx, cfg.Source, ds.Len(), ds.NumClasses(), loadElapsed, nil)
	logger.Debug("dataset memory", "bytes", resources.MemoryUsage(), "limit", resources.MemoryLimit())

	for _, e := range ds.Classes().Entries() {
		logger.Debug("class", "index", e.Index, "label", e.Label)
	}

	splitOpts := dataset.DefaultSplitOptions()
	splitOpts.Seed = cfg.Seed
	parts, err := ds.Split(splitOpts)
	if err != nil {
		return err
	}
	logger.Info("dataset split",
		"training", parts.Training.Len(),
		"testing", parts.Testing.Len(),
		"validation", parts.Validation.Len(),
		"leftover", parts.Leftover,
	)

	knnCfg, err := mnistknn.Configure(cfg.K, ds.NumClasses(), cfg.Metric)
	if err != nil {
		return err
	}
	clf, err := knnCfg.Bind(parts.Training, parts.Testing, parts.Validation,
		mnistknn.WithLogger(logger.WithK(cfg.K).WithMetric(knnCfg.Metric.String())),
		mnistknn.WithMetricsCollector(metrics),
		mnistknn.WithConcurrency(cfg.Concurrency),
		mnistknn.WithQueryParallelism(cfg.QueryParallelism),
		mnistknn.WithProgressInterval(cfg.ProgressInterval),
	)
	if err != nil {
		return err
	}

	report := &Report{
		K:        cfg.K,
		Metric:   knnCfg.Metric.String(),
		Seed:     cfg.Seed,
		Samples:  ds.Len(),
		Features: ds.FeatureSize(),
		Split: SplitReport{
			Training:   parts.Training.Len(),
			Testing:    parts.Testing.Len(),
			Validation: parts.Validation.Len(),
			Leftover:   parts.Leftover,
		},
	}

	predictions, err := clf.FitPredict(ctx)
	if predictions == nil {
		return err
	}
	if err != nil {
		logger.Warn("some testing queries failed", "error", err)
	}

	ev, err := clf.EvaluateOn(ctx, parts.Testing, predictions)
	if err != nil {
		return err
	}
	report.Testing = newPartitionReport(ev, predictions)
	report.Classes = classReports(ds.Classes(), ev)
	fmt.Fprintf(stdout, "accuracy: %.4f\n", ev.Accuracy)
	if n := len(report.Testing.Missed); n > 0 {
		logger.Info("testing misses", "count", n, "positions", report.Testing.Missed)
	}

	if cfg.ScoreValidation {
		vev, err := clf.ScoreValidation(ctx)
		switch {
		case errors.Is(err, mnistknn.ErrEmptyTestSet):
			logger.Warn("validation partition is empty")
		case vev == nil:
			return err
		case err != nil:
			logger.Warn("some validation queries failed", "error", err)
		}
		if vev != nil {
			report.Validation = newPartitionReport(vev, nil)
			fmt.Fprintf(stdout, "validation accuracy: %.4f\n", vev.Accuracy)
		}
	}

	if cfg.ReportPath != "" {
		if err := writeReport(cfg.ReportPath, cfg.ReportCodec, report, time.Since(start)); err != nil {
			return err
		}
	}
	return nil
}
