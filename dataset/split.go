package dataset

import (
	"fmt"
	"math/rand"
	"time"
)

// SplitOptions configures Split.
type SplitOptions struct {
	Train      float64
	Test       float64
	Validation float64

	// Seed drives the shuffle. Zero seeds from the clock.
	Seed int64
}

// DefaultSplitOptions returns the 80/10/10 proportions.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		Train:      0.80,
		Test:       0.10,
		Validation: 0.10,
	}
}

func (o SplitOptions) validate() error {
	for _, p := range []float64{o.Train, o.Test, o.Validation} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidSplit, p)
		}
	}
	if sum := o.Train + o.Test + o.Validation; sum > 1+1e-9 {
		return fmt.Errorf("%w: proportions sum to %v", ErrInvalidSplit, sum)
	}
	return nil
}

// Partitions is the result of Split.
type Partitions struct {
	Training   *Partition
	Testing    *Partition
	Validation *Partition
	// Leftover counts samples assigned to no partition because of truncation.
	Leftover int
}

// Split shuffles sample positions and assigns disjoint training, testing and
// validation partitions. Each size is the truncated product of the dataset
// size and its proportion.
func (d *Dataset) Split(opts SplitOptions) (*Partitions, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := len(d.samples)
	trainSize := int(float64(n) * opts.Train)
	testSize := int(float64(n) * opts.Test)
	validationSize := int(float64(n) * opts.Validation)
	if total := trainSize + testSize + validationSize; total > n {
		return nil, fmt.Errorf("%w: %d samples cannot hold %d", ErrInvalidSplit, n, total)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	training, err := d.Subset("training", perm[:trainSize]...)
	if err != nil {
		return nil, err
	}
	testing, err := d.Subset("testing", perm[trainSize:trainSize+testSize]...)
	if err != nil {
		return nil, err
	}
	validation, err := d.Subset("validation", perm[trainSize+testSize:trainSize+testSize+validationSize]...)
	if err != nil {
		return nil, err
	}
	if err := Disjoint(training, testing, validation); err != nil {
		return nil, err
	}

	return &Partitions{
		Training:   training,
		Testing:    testing,
		Validation: validation,
		Leftover:   n - trainSize - testSize - validationSize,
	}, nil
}
