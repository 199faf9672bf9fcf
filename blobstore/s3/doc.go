// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "datasets",
//	    s3.WithPrefix("mnist/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	ds, err := mnist.Load(ctx, store)
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Parallel multipart downloads for whole files
//   - Automatic pagination for listing
//   - Custom endpoints with path-style addressing
package s3
