package idx

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionRoundTrip(t *testing.T) {
	im := &Images{Count: 4, Rows: 3, Cols: 3, Pixels: make([]byte, 36)}
	for i := range im.Pixels {
		im.Pixels[i] = byte(i * 7)
	}

	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZSTD, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := Compress(&buf, c)
			require.NoError(t, err)
			require.NoError(t, WriteImages(w, im))
			require.NoError(t, w.Close())

			assert.Equal(t, c, Detect(buf.Bytes()))

			rc, detected, err := Decompress(&buf)
			require.NoError(t, err)
			defer rc.Close()
			assert.Equal(t, c, detected)

			got, err := ReadImages(rc)
			require.NoError(t, err)
			assert.Equal(t, im, got)
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		want   Compression
	}{
		{"Labels", []byte{0x00, 0x00, 0x08, 0x01}, CompressionNone},
		{"Gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, CompressionGzip},
		{"ZSTD", []byte{0x28, 0xb5, 0x2f, 0xfd}, CompressionZSTD},
		{"LZ4", []byte{0x04, 0x22, 0x4d, 0x18}, CompressionLZ4},
		{"Short", []byte{0x1f}, CompressionNone},
		{"Empty", nil, CompressionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.prefix))
		})
	}
}

func TestDecompressShortInput(t *testing.T) {
	rc, c, err := Decompress(bytes.NewReader([]byte{0x00}))
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, data)
}
