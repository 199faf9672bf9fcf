// Package testutil provides testing utilities for mnistknn.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating synthetic digit images, encoding
// them as IDX fixtures, and computing exact neighbor rankings.
//
// # Synthetic Samples
//
//	rng := testutil.NewRNG(seed)
//	samples := rng.ClusteredSamples(50, []uint8{3, 1, 4}, 784, 20)
//
// # IDX Fixtures
//
//	images, labels := testutil.EncodeIDX(t, samples, 28, 28, idx.CompressionGzip)
//
// # Ground Truth
//
//	ranked := testutil.RankByDistance(query, samples, distance.Euclidean)
package testutil
