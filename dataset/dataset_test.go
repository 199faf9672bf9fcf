package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(labels ...uint8) []Sample {
	out := make([]Sample, len(labels))
	for i, l := range labels {
		out[i] = Sample{Features: []uint8{uint8(i), l}, RawLabel: l}
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("Enumerate", func(t *testing.T) {
		ds, err := New(samples(7, 3, 7, 9, 3))
		require.NoError(t, err)

		assert.Equal(t, 5, ds.Len())
		assert.Equal(t, 2, ds.FeatureSize())
		assert.Equal(t, 3, ds.NumClasses())

		// First-seen order: 7 -> 0, 3 -> 1, 9 -> 2.
		want := []int{0, 1, 0, 2, 1}
		for i, w := range want {
			assert.Equal(t, w, ds.At(i).ClassIndex, "sample %d", i)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("FeatureSizeMismatch", func(t *testing.T) {
		s := samples(1, 2, 3)
		s[2].Features = []uint8{1}

		_, err := New(s)
		var fm *ErrFeatureSizeMismatch
		require.True(t, errors.As(err, &fm))
		assert.Equal(t, 2, fm.Index)
		assert.Equal(t, 2, fm.Expected)
		assert.Equal(t, 1, fm.Actual)
	})

	t.Run("BorrowedSamples", func(t *testing.T) {
		ds, err := New(samples(1, 2))
		require.NoError(t, err)
		assert.Same(t, ds.At(1), ds.At(1))
	})
}

func TestClassMap(t *testing.T) {
	s := samples(5, 0, 4, 1, 9, 2, 1, 3, 1, 4)
	m := Enumerate(s)
	require.Equal(t, 7, m.Len())

	t.Run("Bijection", func(t *testing.T) {
		seen := map[int]uint8{}
		for _, e := range m.Entries() {
			idx, ok := m.Index(e.Label)
			require.True(t, ok)
			assert.Equal(t, e.Index, idx)

			label, ok := m.Label(e.Index)
			require.True(t, ok)
			assert.Equal(t, e.Label, label)

			_, dup := seen[idx]
			assert.False(t, dup)
			seen[idx] = label
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		require.NoError(t, m.Apply(s))
		first := make([]int, len(s))
		for i := range s {
			first[i] = s[i].ClassIndex
		}

		again := Enumerate(s)
		require.NoError(t, again.Apply(s))
		for i := range s {
			assert.Equal(t, first[i], s[i].ClassIndex)
		}
		assert.Equal(t, m.Entries(), again.Entries())
	})

	t.Run("Entries", func(t *testing.T) {
		assert.Equal(t, []ClassEntry{
			{Label: 5, Index: 0},
			{Label: 0, Index: 1},
			{Label: 4, Index: 2},
			{Label: 1, Index: 3},
			{Label: 9, Index: 4},
			{Label: 2, Index: 5},
			{Label: 3, Index: 6},
		}, m.Entries())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, ok := m.Index(8)
		assert.False(t, ok)
		_, ok = m.Label(7)
		assert.False(t, ok)
		_, ok = m.Label(-1)
		assert.False(t, ok)

		var ul *ErrUnknownLabel
		err := m.Apply([]Sample{{RawLabel: 8}})
		require.True(t, errors.As(err, &ul))
		assert.Equal(t, uint8(8), ul.Label)
	})
}
