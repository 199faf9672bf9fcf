package mnistknn

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/internal/pool"
	"golang.org/x/sync/errgroup"
)

// Unpredicted marks a query that failed within a batch.
const Unpredicted = -1

// Vote returns the majority class among neighbors.
//
// Class indexes outside [0, numClasses) are not counted. The scan runs from
// class 0 upward and a class wins only with a count strictly greater than
// the best so far, so ties go to the lowest class index.
func Vote(neighbors []Neighbor, numClasses int) (int, error) {
	if numClasses < 1 {
		return 0, &ErrInvalidConfiguration{Field: "num_classes", Reason: "must be positive"}
	}

	freq := make([]int, numClasses)
	votes := 0
	for _, n := range neighbors {
		ci := n.Sample.ClassIndex
		if ci < 0 || ci >= numClasses {
			continue
		}
		freq[ci]++
		votes++
	}
	if votes == 0 {
		return 0, ErrPredictionUndetermined
	}

	best, bestFreq := -1, -1
	for i, f := range freq {
		if f > bestFreq {
			best, bestFreq = i, f
		}
	}
	return best, nil
}

// PredictClass votes over neighbors with the configured class count.
func (c *Classifier) PredictClass(neighbors []Neighbor) (int, error) {
	return Vote(neighbors, c.cfg.NumClasses)
}

// Predict classifies a single feature vector.
func (c *Classifier) Predict(ctx context.Context, features []uint8) (int, error) {
	return c.predict(ctx, -1, features)
}

func (c *Classifier) predict(ctx context.Context, position int, features []uint8) (class int, err error) {
	start := time.Now()
	defer func() {
		c.opts.metricsCollector.RecordQuery(time.Since(start), err)
		c.opts.logger.LogQuery(ctx, position, class, err)
	}()

	scratch := pool.Get(c.training.Len())
	defer pool.Put(scratch)

	neighbors, err := c.findNeighbors(ctx, features, scratch.Distances)
	if err != nil {
		return Unpredicted, err
	}
	class, err = c.PredictClass(neighbors)
	if err != nil {
		return Unpredicted, err
	}
	return class, nil
}

// FitPredict predicts every sample of the testing partition, in order.
func (c *Classifier) FitPredict(ctx context.Context) ([]int, error) {
	return c.RunOn(ctx, c.testing)
}

// Run is FitPredict under the driver-facing name paired with Score.
func (c *Classifier) Run(ctx context.Context) ([]int, error) {
	return c.FitPredict(ctx)
}

// RunOn predicts every sample of view, in order.
//
// Queries run in parallel, bounded by WithConcurrency. A failed query leaves
// Unpredicted at its position and contributes an *ErrQuery to the returned
// error; the other predictions stay valid. Cancelling ctx stops the batch
// and returns the context error with no predictions.
func (c *Classifier) RunOn(ctx context.Context, view dataset.View) ([]int, error) {
	n := view.Len()
	name := viewName(view, "unnamed")
	start := time.Now()

	predictions := make([]int, n)
	errs := make([]error, n)
	prog := newProgress(c.opts.logger, name, n, c.opts.progressInterval)

	var (
		done   atomic.Int64
		failed atomic.Int64
		g      errgroup.Group
	)
	g.SetLimit(c.opts.concurrency)

	for i := range n {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			class, err := c.predict(ctx, i, view.At(i).Features)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed.Add(1)
				errs[i] = &ErrQuery{Position: i, cause: err}
			}
			predictions[i] = class
			prog.report(ctx, int(done.Add(1)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	c.opts.metricsCollector.RecordBatch(n, int(failed.Load()), elapsed)
	c.opts.logger.LogBatch(ctx, name, n, int(failed.Load()), elapsed)

	return predictions, errors.Join(errs...)
}
