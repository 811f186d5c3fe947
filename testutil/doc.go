// Package testutil provides testing utilities for kmedoids.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point sets, turning them into
// distance matrices, and computing exact reference answers.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(200, 2)          // uniform [0, 1)
//	pts = rng.ClusteredPoints(200, 2, 5, 0.05) // 5 blobs
//
// # Distance Matrices
//
//	rows := testutil.DistanceRows(pts, testutil.Euclidean)
//	m := testutil.Matrix(rows)
//
// # Ground Truth
//
//	median := testutil.OneMedian(rows, members)
package testutil
