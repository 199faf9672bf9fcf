package mnistknn

import (
	"github.com/hupe1980/mnistknn/dataset"
	"github.com/hupe1980/mnistknn/distance"
)

// Config holds the classifier hyperparameters. It is immutable once a
// Classifier is built from it.
type Config struct {
	// K is the number of neighbors consulted per query.
	K int
	// NumClasses is the number of enumerated classes.
	NumClasses int
	// Metric selects the distance function.
	Metric distance.Metric
}

// Configure builds a Config from a metric name such as "euclidean" or "manhattan".
func Configure(k, numClasses int, metricName string) (Config, error) {
	m, err := distance.ParseMetric(metricName)
	if err != nil {
		return Config{}, &ErrInvalidConfiguration{Field: "metric", Reason: "is unknown", cause: err}
	}

	cfg := Config{K: k, NumClasses: numClasses, Metric: m}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the hyperparameters that do not depend on bound data.
func (c Config) Validate() error {
	if c.K < 1 {
		return &ErrInvalidConfiguration{Field: "k", Reason: "must be positive"}
	}
	if c.NumClasses < 1 {
		return &ErrInvalidConfiguration{Field: "num_classes", Reason: "must be positive"}
	}
	if _, err := distance.Provider(c.Metric); err != nil {
		return &ErrInvalidConfiguration{Field: "metric", Reason: "is unknown", cause: err}
	}
	return nil
}

// Bind builds a Classifier over the given partitions. It is shorthand for New.
func (c Config) Bind(training, testing, validation dataset.View, optFns ...Option) (*Classifier, error) {
	return New(c, Data{Training: training, Testing: testing, Validation: validation}, optFns...)
}
