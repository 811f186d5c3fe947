package testutil

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/kmedoids/matrix"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// UniformPoints generates num points with coordinates in [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}
	return points
}

// ClusteredPoints generates points scattered around clusters random centers
// with Gaussian noise of the given spread. Point i belongs to center
// i % clusters.
func (r *RNG) ClusteredPoints(num, dim, clusters int, spread float64) [][]float64 {
	centers := r.UniformPoints(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	for i := range num {
		center := centers[i%clusters]
		p := data[i*dim : (i+1)*dim]
		for j := range p {
			p[j] = center[j] + r.rand.NormFloat64()*spread
		}
		points[i] = p
	}
	return points
}

// Zipf returns a Zipfian-distributed value in [0, n).
// s=1.0 gives standard Zipf, s=1.5 gives a heavy tail.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}
	return n - 1
}

// SkewedPoints generates 1-D points whose group sizes follow a Zipf
// distribution, so a few groups hold most points. Group g is centered at
// g*gap.
func (r *RNG) SkewedPoints(num, groups int, s, gap float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, num)
	for i := range num {
		g := r.zipfLocked(groups, s)
		points[i] = []float64{float64(g)*gap + r.rand.Float64()}
	}
	return points
}

// Metric computes the distance between two points.
type Metric func(a, b []float64) float64

// Euclidean is the L2 distance.
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Manhattan is the L1 distance.
func Manhattan(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// DistanceRows returns the full pairwise distance matrix of points. Only the
// upper triangle is computed; the lower one is mirrored so the result is
// exactly symmetric.
func DistanceRows(points [][]float64, metric Metric) [][]float64 {
	n := len(points)
	data := make([]float64, n*n)
	rows := make([][]float64, n)
	for i := range n {
		rows[i] = data[i*n : (i+1)*n]
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			d := metric(points[i], points[j])
			rows[i][j] = d
			rows[j][i] = d
		}
	}
	return rows
}

// Matrix wraps rows as a *matrix.Dense and panics on malformed input.
func Matrix(rows [][]float64) *matrix.Dense {
	m, err := matrix.FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// OneMedian returns the member with the smallest summed distance to all
// members, ties going to the member listed first. It returns -1 for an
// empty set.
func OneMedian(rows [][]float64, members []int) int {
	best, bestSum := -1, 0.0
	for _, i := range members {
		var sum float64
		for _, j := range members {
			sum += rows[i][j]
		}
		if best == -1 || sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}

// All returns the indices 0..n-1.
func All(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Cost returns the summed distance of every point to its medoid.
func Cost(rows [][]float64, medoids, labels []int) float64 {
	var total float64
	for i, c := range labels {
		total += rows[i][medoids[c]]
	}
	return total
}
