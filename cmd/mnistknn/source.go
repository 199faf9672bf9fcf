package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/mnistknn/blobstore"
	minioblob "github.com/hupe1980/mnistknn/blobstore/minio"
	"github.com/hupe1980/mnistknn/blobstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// openStore resolves the configured dataset source.
func openStore(ctx context.Context, cfg *Config) (blobstore.BlobStore, error) {
	switch cfg.Source {
	case "local":
		return blobstore.NewLocalStore(cfg.DataDir), nil
	case "s3":
		opts := []s3.Option{s3.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.Endpoint))
		}
		return s3.New(ctx, cfg.Bucket, opts...)
	case "minio":
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, err
		}
		return minioblob.NewStore(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, cfg.Source)
	}
}
