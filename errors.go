package mnistknn

import (
	"errors"
	"fmt"
)

var (
	// ErrPredictionUndetermined is returned when no neighbor casts a vote for
	// a class in [0, NumClasses).
	ErrPredictionUndetermined = errors.New("mnistknn: prediction undetermined")

	// ErrEmptyTestSet is returned when scoring a partition with no samples.
	ErrEmptyTestSet = errors.New("mnistknn: empty test set")

	// ErrPredictionCount is returned when the number of predictions differs
	// from the size of the scored partition.
	ErrPredictionCount = errors.New("mnistknn: prediction count does not match partition size")
)

// ErrInvalidConfiguration indicates a rejected hyperparameter or partition binding.
type ErrInvalidConfiguration struct {
	Field  string
	Reason string
	cause  error
}

func (e *ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("mnistknn: invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ErrInvalidConfiguration) Unwrap() error { return e.cause }

// ErrNeighborSearchExhausted indicates that round Round of a K-round
// neighbor search found no distance strictly greater than the previous one.
type ErrNeighborSearchExhausted struct {
	Round int
	K     int
}

func (e *ErrNeighborSearchExhausted) Error() string {
	return fmt.Sprintf("mnistknn: neighbor search exhausted in round %d of %d", e.Round, e.K)
}

// ErrQuery wraps the failure of a single query within a batch.
//
// The underlying error can be accessed via errors.Unwrap.
type ErrQuery struct {
	// Position is the query's index in the partition being predicted.
	Position int
	cause    error
}

func (e *ErrQuery) Error() string {
	return fmt.Sprintf("mnistknn: query %d: %v", e.Position, e.cause)
}

func (e *ErrQuery) Unwrap() error { return e.cause }
