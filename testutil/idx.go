package testutil

import (
	"bytes"
	"testing"

	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/idx"
	"github.com/stretchr/testify/require"
)

// EncodeIDX encodes samples as an image file and a label file, compressed
// with c. Every sample must have rows*cols features.
func EncodeIDX(tb testing.TB, samples []dataset.Sample, rows, cols int, c idx.Compression) (images, labels []byte) {
	tb.Helper()

	im := &idx.Images{Count: len(samples), Rows: rows, Cols: cols}
	raw := make([]byte, len(samples))
	for i, s := range samples {
		require.Len(tb, s.Features, rows*cols)
		im.Pixels = append(im.Pixels, s.Features...)
		raw[i] = s.RawLabel
	}

	return encode(tb, c, func(b *bytes.Buffer) error { return idx.WriteImages(b, im) }),
		encode(tb, c, func(b *bytes.Buffer) error { return idx.WriteLabels(b, raw) })
}

func encode(tb testing.TB, c idx.Compression, write func(*bytes.Buffer) error) []byte {
	var plain bytes.Buffer
	require.NoError(tb, write(&plain))

	var out bytes.Buffer
	w, err := idx.Compress(&out, c)
	require.NoError(tb, err)
	_, err = w.Write(plain.Bytes())
	require.NoError(tb, err)
	require.NoError(tb, w.Close())
	return out.Bytes()
}
