// Package mnistknn classifies handwritten digits with exhaustive
// K-nearest-neighbor search over raw pixel vectors.
//
// # Quick Start
//
//	ctx := context.Background()
//	ds, _ := mnist.Load(ctx, blobstore.NewLocalStore("./data"))
//	parts, _ := ds.Split(dataset.DefaultSplitOptions())
//
//	cfg, _ := mnistknn.Configure(4, ds.NumClasses(), "euclidean")
//	clf, _ := cfg.Bind(parts.Training, parts.Testing, parts.Validation)
//
//	predictions, _ := clf.FitPredict(ctx)
//	accuracy, _ := clf.Accuracy(predictions)
//
// # Neighbor Selection
//
// Every query is compared with every training sample. Neighbors are picked in
// K rounds: the nearest sample first, then each round the nearest sample
// whose distance is strictly greater than the previous pick. Samples tied
// with an earlier pick are skipped, so a query needs at least K distinct
// distances to the training set; otherwise the search fails with
// *ErrNeighborSearchExhausted.
//
// # Voting
//
// The predicted class is the most frequent class index among the neighbors.
// Ties go to the lowest class index.
//
// # Concurrency
//
// FitPredict and RunOn run queries in parallel; see WithConcurrency.
// WithQueryParallelism additionally splits one query's distance pass. Each
// query owns its distance scratch, so bound partitions are only read.
//
// # Observability
//
// Structured logging goes through Logger (log/slog); metrics through a
// MetricsCollector such as BasicMetricsCollector or prommetrics.Collector.
package mnistknn
