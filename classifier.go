package mnistknn

import (
	"fmt"

	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/distance"
)

// Data binds the partitions a Classifier works on. The classifier only reads
// them; the caller keeps ownership. Testing and Validation may be nil.
type Data struct {
	Training   dataset.View
	Testing    dataset.View
	Validation dataset.View
}

// Classifier is an exhaustive K-nearest-neighbor classifier.
//
// A Classifier is safe for concurrent use: every query keeps its distances
// in private scratch and the bound partitions are never written.
type Classifier struct {
	cfg        Config
	distance   distance.Func
	training   dataset.View
	testing    dataset.View
	validation dataset.View
	opts       options
}

// New validates cfg against the bound data and returns a Classifier.
//
// It fails with *ErrInvalidConfiguration when K or NumClasses is not
// positive, the metric is unknown, the training partition is missing,
// or K exceeds the training size.
func New(cfg Config, data Data, optFns ...Option) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if data.Training == nil {
		return nil, &ErrInvalidConfiguration{Field: "training", Reason: "is not bound"}
	}
	if n := data.Training.Len(); cfg.K > n {
		return nil, &ErrInvalidConfiguration{
			Field:  "k",
			Reason: fmt.Sprintf("%d exceeds training size %d", cfg.K, n),
		}
	}

	fn, err := distance.Provider(cfg.Metric)
	if err != nil {
		return nil, &ErrInvalidConfiguration{Field: "metric", Reason: "is unknown", cause: err}
	}

	return &Classifier{
		cfg:        cfg,
		distance:   fn,
		training:   data.Training,
		testing:    orEmpty(data.Testing),
		validation: orEmpty(data.Validation),
		opts:       applyOptions(optFns),
	}, nil
}

// K returns the number of neighbors consulted per query.
func (c *Classifier) K() int { return c.cfg.K }

// NumClasses returns the number of classes predictions range over.
func (c *Classifier) NumClasses() int { return c.cfg.NumClasses }

// Metric returns the configured distance metric.
func (c *Classifier) Metric() distance.Metric { return c.cfg.Metric }

// Config returns the configuration the classifier was built with.
func (c *Classifier) Config() Config { return c.cfg }

// Training returns the bound training partition.
func (c *Classifier) Training() dataset.View { return c.training }

// Testing returns the bound testing partition; empty if none was bound.
func (c *Classifier) Testing() dataset.View { return c.testing }

// Validation returns the bound validation partition; empty if none was bound.
func (c *Classifier) Validation() dataset.View { return c.validation }

type emptyView struct{}

func (emptyView) Len() int               { return 0 }
func (emptyView) At(int) *dataset.Sample { return nil }
func (emptyView) Name() string           { return "empty" }

func orEmpty(v dataset.View) dataset.View {
	if v == nil {
		return emptyView{}
	}
	return v
}

func viewName(v dataset.View, fallback string) string {
	if n, ok := v.(dataset.Named); ok {
		return n.Name()
	}
	return fallback
}
