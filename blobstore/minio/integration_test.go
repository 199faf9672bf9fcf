package minio

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/mnistknn/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := envOr("MINIO_ENDPOINT", "localhost:9000")
	accessKey := envOr("MINIO_ACCESS_KEY", "minioadmin")
	secretKey := envOr("MINIO_SECRET_KEY", "minioadmin")
	bucket := "test-mnistknn"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("hello minio world")
	_, err = client.PutObject(ctx, bucket, "test-prefix/test.bin", bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	require.NoError(t, err)
	defer func() {
		_ = client.RemoveObject(ctx, bucket, "test-prefix/test.bin", minio.RemoveObjectOptions{})
	}()

	store := NewStore(client, bucket, "test-prefix/")

	missing, err := store.Fetch(ctx, "missing.bin")
	assert.Nil(t, missing)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	blob, err := store.Open(ctx, "test.bin")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	part := make([]byte, 5)
	n, err := blob.ReadAt(ctx, part, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "minio", string(part))

	n, err = blob.ReadAt(ctx, make([]byte, 10), 12)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 5, n)
	require.NoError(t, blob.Close())

	got, err := store.Fetch(ctx, "test.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.bin")

	_, err = store.Open(ctx, "missing.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
