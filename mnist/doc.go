// Package mnist loads the MNIST handwritten digit files into a dataset.
//
// The image and label files are IDX streams, optionally gzip, zstd or lz4
// compressed, fetched from any blobstore.BlobStore:
//
//	store := blobstore.NewLocalStore("./data")
//	ds, err := mnist.Load(ctx, store, func(o *mnist.Options) {
//	    o.MaxSamples = 10000
//	})
//
// Pixels are read as raw bytes in row-major order; labels map one to one.
package mnist
