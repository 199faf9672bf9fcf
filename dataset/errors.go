package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a dataset is built from no samples.
	ErrEmpty = errors.New("dataset: no samples")

	// ErrOverlap is returned when partitions share a sample.
	ErrOverlap = errors.New("dataset: partitions overlap")

	// ErrInvalidSplit is returned for proportions outside [0, 1] or summing above 1.
	ErrInvalidSplit = errors.New("dataset: invalid split proportions")
)

// ErrFeatureSizeMismatch indicates a sample whose feature vector length
// differs from the first sample's.
type ErrFeatureSizeMismatch struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrFeatureSizeMismatch) Error() string {
	return fmt.Sprintf("dataset: sample %d has %d features, expected %d", e.Index, e.Actual, e.Expected)
}

// ErrUnknownLabel indicates a raw label missing from a class map.
type ErrUnknownLabel struct {
	Label uint8
}

func (e *ErrUnknownLabel) Error() string {
	return fmt.Sprintf("dataset: raw label %d is not enumerated", e.Label)
}
