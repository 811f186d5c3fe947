package medoid

import (
	"math"
	"math/rand/v2"
)

type dense [][]float64

func (d dense) Len() int            { return len(d) }
func (d dense) Row(i int) []float64 { return d[i] }

// fourPoints holds two tight pairs, {0,1} and {2,3}.
var fourPoints = dense{
	{0, 1, 4, 5},
	{1, 0, 5, 4},
	{4, 5, 0, 1},
	{5, 4, 1, 0},
}

// linePoints returns the absolute-difference matrix of the given positions.
func linePoints(xs ...float64) dense {
	d := make(dense, len(xs))
	for i := range xs {
		d[i] = make([]float64, len(xs))
		for j := range xs {
			d[i][j] = math.Abs(xs[i] - xs[j])
		}
	}
	return d
}

func randomPlane(n int, seed uint64) dense {
	rng := rand.New(rand.NewPCG(seed, seed))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.Float64() * 100
		ys[i] = rng.Float64() * 100
	}
	d := make(dense, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			d[i][j] = math.Hypot(xs[i]-xs[j], ys[i]-ys[j])
		}
	}
	return d
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
