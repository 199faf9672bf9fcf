package minio

import (
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go/v7"
)

// object serves ranged GETs against one key.
type object struct {
	store *Store
	key   string
	size  int64
}

func (o *object) Size() int64 { return o.size }

func (o *object) Close() error { return nil }

// ReadAt follows io.ReaderAt: a read that ends at or past the end of the
// object returns io.EOF along with the bytes it got.
func (o *object) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if off < 0 || off >= o.size {
		return 0, io.EOF
	}
	want := min(int64(len(p)), o.size-off)
	if want == 0 {
		return 0, nil
	}

	var opts minio.GetObjectOptions
	if err := opts.SetRange(off, off+want-1); err != nil {
		return 0, err
	}

	body, err := o.store.client.GetObject(ctx, o.store.bucket, o.key, opts)
	if err != nil {
		return 0, mapError(err)
	}
	defer body.Close()

	n, err := io.ReadFull(body, p[:want])
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return n, io.EOF
	case err != nil:
		return n, mapError(err)
	case want < int64(len(p)):
		return n, io.EOF
	}
	return n, nil
}
