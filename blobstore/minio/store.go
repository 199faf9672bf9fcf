package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hupe1980/mnistknn/blobstore"
	"github.com/minio/minio-go/v7"
)

// Store implements blobstore.BlobStore and blobstore.Fetcher on a MinIO client.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a Store over bucket. Blob names are resolved below
// prefix; surrounding slashes are ignored.
func NewStore(client *minio.Client, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *Store) objectKey(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *Store) blobName(key string) string {
	if s.prefix == "" {
		return key
	}
	return strings.TrimPrefix(key, s.prefix+"/")
}

// Open stats the object and returns a blob serving ranged reads.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	info, err := s.stat(ctx, name)
	if err != nil {
		return nil, err
	}
	return &object{store: s, key: info.Key, size: info.Size}, nil
}

// Fetch downloads a whole object into a buffer sized from its metadata.
func (s *Store) Fetch(ctx context.Context, name string) ([]byte, error) {
	info, err := s.stat(ctx, name)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, info.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err)
	}
	defer obj.Close()

	buf := make([]byte, info.Size)
	if _, err := io.ReadFull(obj, buf); err != nil {
		return nil, fmt.Errorf("minio: read %s: %w", info.Key, mapError(err))
	}
	return buf, nil
}

// List returns the names of all blobs starting with prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    s.objectKey(prefix),
		Recursive: true,
	}

	var names []string
	for info := range s.client.ListObjects(ctx, s.bucket, opts) {
		if info.Err != nil {
			return nil, mapError(info.Err)
		}
		if name := s.blobName(info.Key); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) stat(ctx context.Context, name string) (minio.ObjectInfo, error) {
	key := s.objectKey(name)
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return minio.ObjectInfo{}, mapError(err)
	}
	info.Key = key
	return info, nil
}

func mapError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return fmt.Errorf("%w: %w", blobstore.ErrNotFound, err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("object shorter than reported: %w", err)
	}
	return err
}
