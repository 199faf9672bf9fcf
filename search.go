package mnistknn

import (
	"context"
	"fmt"
	"math"

	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/internal/pool"
	"golang.org/x/sync/errgroup"
)

// Neighbor is one training sample selected for a query.
type Neighbor struct {
	// Index is the sample's position in the training partition.
	Index int
	// Distance is the sample's distance to the query.
	Distance float64
	// Sample is borrowed from the training partition and must not be mutated.
	Sample *dataset.Sample
}

// FindNeighbors returns the K training samples nearest to query, nearest first.
//
// Selection runs K rounds over the full training partition. Round 0 takes
// the strictly smallest distance; every later round takes the smallest
// distance strictly greater than the one picked before. Equal distances
// resolve to the lowest training index. A sample tied with an already
// picked distance is never selected, so K may exceed the number of distinct
// distances, in which case *ErrNeighborSearchExhausted is returned.
func (c *Classifier) FindNeighbors(ctx context.Context, query []uint8) ([]Neighbor, error) {
	scratch := pool.Get(c.training.Len())
	defer pool.Put(scratch)

	return c.findNeighbors(ctx, query, scratch.Distances)
}

// findNeighbors fills dist, which must have one slot per training sample.
func (c *Classifier) findNeighbors(ctx context.Context, query []uint8, dist []float64) ([]Neighbor, error) {
	if err := c.fillDistances(ctx, query, dist); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k := c.cfg.K
	neighbors := make([]Neighbor, 0, k)
	prev := math.Inf(-1)

	for round := range k {
		best := -1
		bestDist := math.Inf(1)
		for i, d := range dist {
			if d > prev && d < bestDist {
				best, bestDist = i, d
			}
		}
		if best < 0 {
			return nil, &ErrNeighborSearchExhausted{Round: round, K: k}
		}

		neighbors = append(neighbors, Neighbor{
			Index:    best,
			Distance: bestDist,
			Sample:   c.training.At(best),
		})
		prev = bestDist
	}

	return neighbors, nil
}

// fillDistances computes dist[i] for every training sample. With
// WithQueryParallelism above 1 the training partition is cut into
// contiguous chunks, each written by its own goroutine.
func (c *Classifier) fillDistances(ctx context.Context, query []uint8, dist []float64) error {
	workers := min(c.opts.queryParallelism, len(dist))
	if workers <= 1 {
		return c.fillRange(query, dist, 0, len(dist))
	}

	chunk := (len(dist) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(dist); lo += chunk {
		hi := min(lo+chunk, len(dist))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return c.fillRange(query, dist, lo, hi)
		})
	}
	return g.Wait()
}

func (c *Classifier) fillRange(query []uint8, dist []float64, lo, hi int) error {
	for i := lo; i < hi; i++ {
		d, err := c.distance(query, c.training.At(i).Features)
		if err != nil {
			return fmt.Errorf("training sample %d: %w", i, err)
		}
		dist[i] = d
	}
	return nil
}
