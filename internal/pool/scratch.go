// Package pool provides reusable per-query scratch buffers.
// Uses sync.Pool for automatic memory reuse across concurrent queries.
package pool

import "sync"

// DefaultCapacity is the initial distance buffer capacity, sized for the MNIST training split.
const DefaultCapacity = 48000

// maxRetained caps the capacity of buffers returned to the pool.
const maxRetained = DefaultCapacity * 8

// Scratch holds the distance from one query to every training sample.
// A Scratch is owned by exactly one query between Get and Put.
type Scratch struct {
	Distances []float64
}

var scratchPool = sync.Pool{
	New: func() any {
		return &Scratch{Distances: make([]float64, 0, DefaultCapacity)}
	},
}

// Get retrieves a Scratch whose Distances has length n.
func Get(n int) *Scratch {
	s := scratchPool.Get().(*Scratch)
	if cap(s.Distances) < n {
		s.Distances = make([]float64, n)
	} else {
		s.Distances = s.Distances[:n]
	}
	return s
}

// Put returns s to the pool. Oversized buffers are dropped.
func Put(s *Scratch) {
	if cap(s.Distances) > maxRetained {
		return
	}
	s.Distances = s.Distances[:0]
	scratchPool.Put(s)
}
