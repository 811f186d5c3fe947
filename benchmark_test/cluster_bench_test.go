package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/kmedoids"
	"github.com/hupe1980/kmedoids/matrix"
	"github.com/hupe1980/kmedoids/testutil"
)

// Distributions:
// 1. Uniform   - baseline, balanced clusters
// 2. Clustered - well separated blobs, converges in few rounds
// 3. Skewed    - Zipf group sizes, stresses worker allocation

func fixture(name string, n int) *matrix.Dense {
	rng := testutil.NewRNG(42)
	var points [][]float64
	switch name {
	case "uniform":
		points = rng.UniformPoints(n, 8)
	case "clustered":
		points = rng.ClusteredPoints(n, 8, 16, 0.05)
	case "skewed":
		points = rng.SkewedPoints(n, 16, 1.5, 10)
	default:
		panic("unknown fixture " + name)
	}
	return testutil.Matrix(testutil.DistanceRows(points, testutil.Euclidean))
}

func BenchmarkCluster(b *testing.B) {
	ctx := context.Background()
	const n, k = 2000, 16

	for _, dist := range []string{"uniform", "clustered", "skewed"} {
		dm := fixture(dist, n)
		for _, workers := range []int{1, 4, 16} {
			b.Run(fmt.Sprintf("%s/workers=%d", dist, workers), func(b *testing.B) {
				b.ReportAllocs()
				var iters int
				for b.Loop() {
					res, err := kmedoids.Cluster(ctx, dm, k,
						kmedoids.WithWorkers(workers),
						kmedoids.WithSeed(7),
						kmedoids.WithoutValidation(),
					)
					if err != nil {
						b.Fatal(err)
					}
					iters = res.Iterations
				}
				b.ReportMetric(float64(iters), "iters/op")
			})
		}
	}
}

func BenchmarkInit(b *testing.B) {
	ctx := context.Background()
	dm := fixture("uniform", 2000)

	for _, strategy := range []kmedoids.Init{kmedoids.InitFarthestPoint, kmedoids.InitRandom} {
		b.Run(strategy.String(), func(b *testing.B) {
			for b.Loop() {
				if _, err := kmedoids.Cluster(ctx, dm, 32,
					kmedoids.WithInit(strategy),
					kmedoids.WithMaxIter(1),
					kmedoids.WithoutValidation(),
				); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkValidate(b *testing.B) {
	dm := fixture("uniform", 2000)
	b.ReportAllocs()
	for b.Loop() {
		if err := dm.Validate(); err != nil {
			b.Fatal(err)
		}
	}
}
