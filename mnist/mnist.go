package mnist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/hupe1980/mnistknn/blobstore"
	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/idx"
	"github.com/hupe1980/mnistknn/resource"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultImages is the conventional name of the training image file.
	DefaultImages = "train-images.idx3-ubyte"
	// DefaultLabels is the conventional name of the training label file.
	DefaultLabels = "train-labels.idx1-ubyte"
)

// Options configures Load.
type Options struct {
	// Images is the blob name of the image file.
	Images string
	// Labels is the blob name of the label file.
	Labels string
	// MaxSamples caps the number of samples kept, in file order. Zero keeps all.
	MaxSamples int
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
	// Resources limits fetch concurrency, read throughput and decoded bytes.
	// Nil imposes no limits.
	Resources *resource.Controller
}

// DefaultOptions returns the file names of the MNIST training set.
func DefaultOptions() Options {
	return Options{
		Images: DefaultImages,
		Labels: DefaultLabels,
	}
}

// Load fetches the image and label files concurrently, decodes them and
// builds an enumerated dataset.
func Load(ctx context.Context, store blobstore.BlobStore, optFns ...func(*Options)) (*dataset.Dataset, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxSamples < 0 {
		return nil, fmt.Errorf("mnist: negative sample limit %d", opts.MaxSamples)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		images   *idx.Images
		labels   []byte
		reserved atomic.Int64
	)
	// Payload sizes are reserved from the headers, before allocation.
	budget := func(size int) error {
		if err := opts.Resources.AcquireMemory(int64(size)); err != nil {
			return err
		}
		reserved.Add(int64(size))
		return nil
	}

	ds, err := func() (*dataset.Dataset, error) {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			images, err = readFile(gctx, store, opts.Images, &opts, logger, func(r io.Reader) (*idx.Images, error) {
				return idx.ReadImagesWithin(r, budget)
			})
			return err
		})
		g.Go(func() error {
			var err error
			labels, err = readFile(gctx, store, opts.Labels, &opts, logger, func(r io.Reader) ([]byte, error) {
				return idx.ReadLabelsWithin(r, budget)
			})
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		samples, err := Samples(images, labels, opts.MaxSamples)
		if err != nil {
			return nil, err
		}
		return dataset.New(samples)
	}()
	if err != nil {
		opts.Resources.ReleaseMemory(reserved.Load())
		return nil, err
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "mnist dataset loaded",
		slog.Int("samples", ds.Len()),
		slog.Int("features", ds.FeatureSize()),
		slog.Int("classes", ds.NumClasses()),
	)
	return ds, nil
}

func readFile[T any](ctx context.Context, store blobstore.BlobStore, name string, opts *Options, logger *slog.Logger, decode func(io.Reader) (T, error)) (T, error) {
	var zero T

	if err := opts.Resources.AcquireFetch(ctx); err != nil {
		return zero, err
	}
	defer opts.Resources.ReleaseFetch()

	rc, err := blobstore.OpenReader(ctx, store, name)
	if err != nil {
		return zero, fmt.Errorf("mnist: open %s: %w", name, err)
	}
	defer rc.Close()

	dr, c, err := idx.Decompress(resource.NewReader(ctx, rc, opts.Resources))
	if err != nil {
		return zero, fmt.Errorf("mnist: %s: %w", name, err)
	}
	defer dr.Close()

	v, err := decode(dr)
	if err != nil {
		return zero, fmt.Errorf("mnist: decode %s: %w", name, err)
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "idx file decoded",
		slog.String("name", name),
		slog.String("compression", c.String()),
	)
	return v, nil
}

// Samples pairs decoded images with labels. Feature slices alias the image
// pixels. A positive limit keeps only the first limit samples.
func Samples(images *idx.Images, labels []byte, limit int) ([]dataset.Sample, error) {
	if images.Count != len(labels) {
		return nil, fmt.Errorf("%w: %d images, %d labels", idx.ErrCountMismatch, images.Count, len(labels))
	}

	n := images.Count
	if limit > 0 && limit < n {
		n = limit
	}

	samples := make([]dataset.Sample, n)
	for i := range samples {
		samples[i] = dataset.Sample{
			Features: images.Image(i),
			RawLabel: labels[i],
		}
	}
	return samples, nil
}
