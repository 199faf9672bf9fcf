package mnistknn

import (
	"context"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/mnistknn/dataset"
)

// Evaluation compares predictions with the class indexes of a partition.
type Evaluation struct {
	Partition string
	Correct   int
	Total     int
	// Accuracy is Correct/Total.
	Accuracy float64
	// Misses has a bit set for every position predicted wrong or not at all.
	Misses *bitset.BitSet
	// Confusion counts [actual][predicted] over predictions in range.
	Confusion [][]int
}

// Evaluate scores predictions against view, aligned by position.
//
// It fails with ErrEmptyTestSet for an empty view and ErrPredictionCount
// when the lengths differ.
func Evaluate(view dataset.View, predictions []int, numClasses int) (*Evaluation, error) {
	if numClasses < 1 {
		return nil, &ErrInvalidConfiguration{Field: "num_classes", Reason: "must be positive"}
	}
	n := view.Len()
	if n == 0 {
		return nil, ErrEmptyTestSet
	}
	if len(predictions) != n {
		return nil, fmt.Errorf("%w: %d predictions for %d samples", ErrPredictionCount, len(predictions), n)
	}

	ev := &Evaluation{
		Partition: viewName(view, "unnamed"),
		Total:     n,
		Misses:    bitset.New(uint(n)),
		Confusion: make([][]int, numClasses),
	}
	for i := range ev.Confusion {
		ev.Confusion[i] = make([]int, numClasses)
	}

	for i, p := range predictions {
		actual := view.At(i).ClassIndex
		if p == actual {
			ev.Correct++
		} else {
			ev.Misses.Set(uint(i))
		}
		if inRange(actual, numClasses) && inRange(p, numClasses) {
			ev.Confusion[actual][p]++
		}
	}

	ev.Accuracy = float64(ev.Correct) / float64(ev.Total)
	return ev, nil
}

func inRange(class, numClasses int) bool {
	return class >= 0 && class < numClasses
}

// ClassAccuracy returns the fraction of samples of class actual that were
// predicted as actual. It returns 0 for classes without samples in range.
func (e *Evaluation) ClassAccuracy(actual int) float64 {
	if actual < 0 || actual >= len(e.Confusion) {
		return 0
	}
	total := 0
	for _, v := range e.Confusion[actual] {
		total += v
	}
	if total == 0 {
		return 0
	}
	return float64(e.Confusion[actual][actual]) / float64(total)
}

// Accuracy scores predictions against the testing partition.
func (c *Classifier) Accuracy(predictions []int) (float64, error) {
	return c.AccuracyOn(c.testing, predictions)
}

// Score is Accuracy under the driver-facing name paired with Run.
func (c *Classifier) Score(predictions []int) (float64, error) {
	return c.Accuracy(predictions)
}

// AccuracyOn scores predictions against view.
func (c *Classifier) AccuracyOn(view dataset.View, predictions []int) (float64, error) {
	ev, err := c.EvaluateOn(context.Background(), view, predictions)
	if err != nil {
		return 0, err
	}
	return ev.Accuracy, nil
}

// EvaluateOn scores predictions against view and reports the result to the
// configured logger and metrics collector.
func (c *Classifier) EvaluateOn(ctx context.Context, view dataset.View, predictions []int) (*Evaluation, error) {
	ev, err := Evaluate(view, predictions, c.cfg.NumClasses)
	if err != nil {
		return nil, err
	}
	c.opts.metricsCollector.RecordAccuracy(ev.Partition, ev.Accuracy)
	c.opts.logger.LogAccuracy(ctx, ev.Partition, ev.Correct, ev.Total, ev.Accuracy)
	return ev, nil
}

// ScoreValidation predicts and scores the validation partition.
func (c *Classifier) ScoreValidation(ctx context.Context) (*Evaluation, error) {
	if c.validation.Len() == 0 {
		return nil, ErrEmptyTestSet
	}
	predictions, err := c.RunOn(ctx, c.validation)
	if predictions == nil {
		return nil, err
	}
	ev, evErr := c.EvaluateOn(ctx, c.validation, predictions)
	if evErr != nil {
		return nil, evErr
	}
	return ev, err
}
