package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/distance"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillPixels fills dst with uniform intensities in [0, 255].
// Locks only once per call.
func (r *RNG) FillPixels(dst []uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = uint8(r.rand.Intn(256))
	}
}

// Pixels returns a fresh random image of dim pixels.
func (r *RNG) Pixels(dim int) []uint8 {
	p := make([]uint8, dim)
	r.FillPixels(p)
	return p
}

// UniformSamples generates num samples with random pixels and labels drawn
// uniformly from labels. ClassIndex is left zero.
func (r *RNG) UniformSamples(num, dim int, labels []uint8) []dataset.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]uint8, num*dim)
	samples := make([]dataset.Sample, num)
	for i := range samples {
		px := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range px {
			px[j] = uint8(r.rand.Intn(256))
		}
		samples[i] = dataset.Sample{Features: px, RawLabel: labels[r.rand.Intn(len(labels))]}
	}
	return samples
}

// ClusteredSamples generates perLabel samples for every label. Each label has
// a random centroid; samples deviate from it by at most spread per pixel.
// Samples are interleaved by label so first-seen enumeration follows labels.
func (r *RNG) ClusteredSamples(perLabel int, labels []uint8, dim int, spread int) []dataset.Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	centroids := make([][]uint8, len(labels))
	for c := range centroids {
		centroids[c] = make([]uint8, dim)
		for j := range centroids[c] {
			centroids[c][j] = uint8(r.rand.Intn(256))
		}
	}

	samples := make([]dataset.Sample, 0, perLabel*len(labels))
	for range perLabel {
		for c, label := range labels {
			px := make([]uint8, dim)
			for j := range px {
				v := int(centroids[c][j]) + r.rand.Intn(2*spread+1) - spread
				px[j] = uint8(min(max(v, 0), 255))
			}
			samples = append(samples, dataset.Sample{Features: px, RawLabel: label})
		}
	}
	return samples
}

// Ranked is a sample position with its distance to a query.
type Ranked struct {
	Index    int
	Distance float64
}

// RankByDistance returns every sample ordered by distance to query.
// Ties keep ascending index order.
func RankByDistance(query []uint8, samples []dataset.Sample, fn distance.Func) []Ranked {
	ranked := make([]Ranked, len(samples))
	for i := range samples {
		d, err := fn(query, samples[i].Features)
		if err != nil {
			panic(err)
		}
		ranked[i] = Ranked{Index: i, Distance: d}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Distance < ranked[b].Distance
	})
	return ranked
}

// Grid builds samples whose single feature is the given value; handy for
// hand-checked neighbor scenarios on a number line.
func Grid(values []uint8, labels []uint8) []dataset.Sample {
	if len(values) != len(labels) {
		panic("testutil: values and labels differ in length")
	}
	samples := make([]dataset.Sample, len(values))
	for i := range values {
		samples[i] = dataset.Sample{Features: []uint8{values[i]}, RawLabel: labels[i]}
	}
	return samples
}
