// Package kmedoids clusters N items into k groups given a precomputed
// pairwise distance matrix.
//
// Cluster representatives (medoids) are always actual data points. Each
// round recomputes every cluster's medoid as its 1-median and then reassigns
// every point to its nearest medoid, until no label changes or the iteration
// budget runs out. Both phases are spread over a persistent pool of workers
// created once per run.
//
// # Quick Start
//
//	m, _ := matrix.FromRows([][]float64{
//	    {0, 1, 4, 5},
//	    {1, 0, 5, 4},
//	    {4, 5, 0, 1},
//	    {5, 4, 1, 0},
//	})
//
//	res, err := kmedoids.Cluster(ctx, m, 2,
//	    kmedoids.WithWorkers(4),
//	    kmedoids.WithSeed(42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Medoids, res.Labels, res.Converged)
//
// # Determinism
//
// For a given matrix, k, iteration budget and seed, the result does not
// depend on the worker count. Every argmin breaks ties toward the lowest
// index, and per-chunk results are always reduced in chunk order.
//
// # Empty Clusters
//
// A cluster can lose all of its members during reassignment. The behavior
// is selected with WithEmptyClusterPolicy:
//
//   - EmptyClusterRetain (default): keep the cluster's previous medoid.
//   - EmptyClusterReseed: move it to the point farthest from the other medoids.
//   - EmptyClusterFail: abort the run with an *EmptyClusterError.
//
// Duplicate medoids across clusters are accepted.
//
// # Progress
//
// Phase boundaries are reported to an Observer. LogObserver turns them into
// structured log lines; a MetricsCollector receives timings.
package kmedoids
