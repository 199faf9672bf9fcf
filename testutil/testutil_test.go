package testutil

import (
	"bytes"
	"testing"

	"github.com/hupe1980/mnistknn/distance"
	"github.com/hupe1980/mnistknn/idx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Pixels(16)
	rng.Reset()
	b := rng.Pixels(16)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestUniformSamples(t *testing.T) {
	rng := NewRNG(4711)
	labels := []uint8{7, 2}

	s := rng.UniformSamples(20, 9, labels)

	require.Len(t, s, 20)
	for _, sample := range s {
		assert.Len(t, sample.Features, 9)
		assert.Contains(t, labels, sample.RawLabel)
	}
}

func TestClusteredSamples(t *testing.T) {
	rng := NewRNG(4711)
	labels := []uint8{3, 1, 4}

	s := rng.ClusteredSamples(5, labels, 32, 10)

	require.Len(t, s, 15)
	assert.Equal(t, uint8(3), s[0].RawLabel)
	assert.Equal(t, uint8(1), s[1].RawLabel)
	assert.Equal(t, uint8(4), s[2].RawLabel)

	// Same-label samples sit within 2*spread per pixel of each other.
	for j := range s[0].Features {
		diff := int(s[0].Features[j]) - int(s[3].Features[j])
		assert.LessOrEqual(t, diff, 20)
		assert.GreaterOrEqual(t, diff, -20)
	}
}

func TestRankByDistance(t *testing.T) {
	samples := Grid([]uint8{10, 2, 7, 2}, []uint8{0, 0, 0, 0})

	ranked := RankByDistance([]uint8{3}, samples, distance.Euclidean)

	require.Len(t, ranked, 4)
	assert.Equal(t, []int{1, 3, 2, 0}, []int{ranked[0].Index, ranked[1].Index, ranked[2].Index, ranked[3].Index})
	assert.InDelta(t, 1.0, ranked[0].Distance, 1e-9)
}

func TestEncodeIDX(t *testing.T) {
	samples := Grid([]uint8{1, 2, 3}, []uint8{5, 6, 5})

	images, labels := EncodeIDX(t, samples, 1, 1, idx.CompressionNone)

	im, err := idx.ReadImages(bytes.NewReader(images))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, im.Pixels)

	raw, err := idx.ReadLabels(bytes.NewReader(labels))
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6, 5}, raw)
}
