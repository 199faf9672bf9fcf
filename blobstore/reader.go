package blobstore

import (
	"bytes"
	"context"
	"io"
)

type ctxReaderAt struct {
	ctx  context.Context
	blob Blob
}

func (r ctxReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return r.blob.ReadAt(r.ctx, p, off)
}

// NewReader returns a sequential reader over b bound to ctx.
// Mappable blobs are read without copying.
func NewReader(ctx context.Context, b Blob) io.Reader {
	if m, ok := b.(Mappable); ok {
		if data, err := m.Bytes(); err == nil {
			return bytes.NewReader(data)
		}
	}
	return io.NewSectionReader(ctxReaderAt{ctx: ctx, blob: b}, 0, b.Size())
}

type blobReadCloser struct {
	io.Reader
	blob Blob
}

func (r *blobReadCloser) Close() error {
	return r.blob.Close()
}

// OpenReader opens name for sequential reading. Stores implementing Fetcher
// download the blob in one call; others are read through NewReader.
func OpenReader(ctx context.Context, store BlobStore, name string) (io.ReadCloser, error) {
	if f, ok := store.(Fetcher); ok {
		data, err := f.Fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &blobReadCloser{Reader: NewReader(ctx, b), blob: b}, nil
}

// ReadAll reads a whole blob into memory.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	rc, err := OpenReader(ctx, store, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
