package minio

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/hupe1980/mnistknn/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestStore_Keys(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		key    string
	}{
		{"", "train-images.idx3-ubyte", "train-images.idx3-ubyte"},
		{"mnist", "train-images.idx3-ubyte", "mnist/train-images.idx3-ubyte"},
		{"/mnist/", "train-labels.idx1-ubyte", "mnist/train-labels.idx1-ubyte"},
		{"data/mnist/", "a/b", "data/mnist/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s := NewStore(nil, "bucket", tt.prefix)
			assert.Equal(t, tt.key, s.objectKey(tt.name))
			assert.Equal(t, tt.name, s.blobName(tt.key))
		})
	}
}

func TestMapError(t *testing.T) {
	for _, code := range []string{"NoSuchKey", "NotFound", "NoSuchBucket"} {
		t.Run(code, func(t *testing.T) {
			err := mapError(minio.ErrorResponse{Code: code})
			assert.ErrorIs(t, err, blobstore.ErrNotFound)
		})
	}

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	assert.Equal(t, denied, mapError(denied))

	short := mapError(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, short, io.ErrUnexpectedEOF)
	assert.False(t, errors.Is(short, blobstore.ErrNotFound))
}

func TestObject_ReadAtBounds(t *testing.T) {
	o := &object{store: NewStore(nil, "bucket", ""), key: "k", size: 10}

	n, err := o.ReadAt(context.Background(), make([]byte, 4), 10)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	n, err = o.ReadAt(context.Background(), make([]byte, 4), -1)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	n, err = o.ReadAt(context.Background(), nil, 3)
	assert.Equal(t, 0, n)
	assert.NoError(t, err)
}
