// Package distance provides dissimilarity functions over pixel feature vectors.
//
// # Supported Metrics
//
//   - MetricEuclidean: sqrt(Σ (a_i − b_i)²)
//   - MetricManhattan: Σ |a_i − b_i|
//
// Every function validates the vector lengths on each call and returns
// *ErrDimensionMismatch instead of truncating.
//
// # Usage
//
//	fn, _ := distance.Provider(distance.MetricEuclidean)
//	d, err := fn(a, b)
package distance
