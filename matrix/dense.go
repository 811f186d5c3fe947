package matrix

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotSquare is returned when rows do not form an N×N matrix.
var ErrNotSquare = errors.New("matrix: not square")

// Dense is an immutable N×N matrix stored row-major in one slice.
type Dense struct {
	n    int
	data []float64
}

// New wraps data as an n×n matrix. data is not copied and must not be
// modified afterwards.
func New(n int, data []float64) (*Dense, error) {
	if n < 0 || len(data) != n*n {
		return nil, fmt.Errorf("%w: %d values for n=%d", ErrNotSquare, len(data), n)
	}
	return &Dense{n: n, data: data}, nil
}

// FromRows copies rows into a Dense matrix.
func FromRows(rows [][]float64) (*Dense, error) {
	n := len(rows)
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrNotSquare, i, len(row), n)
		}
		data = append(data, row...)
	}
	return &Dense{n: n, data: data}, nil
}

// Len returns N.
func (d *Dense) Len() int { return d.n }

// Row returns row i. The returned slice aliases the matrix storage.
func (d *Dense) Row(i int) []float64 {
	return d.data[i*d.n : (i+1)*d.n : (i+1)*d.n]
}

// At returns the distance between i and j.
func (d *Dense) At(i, j int) float64 { return d.data[i*d.n+j] }

// ValidationError describes the first entry violating the distance matrix
// invariants.
type ValidationError struct {
	Row    int
	Col    int
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("matrix: entry (%d,%d)=%v: %s", e.Row, e.Col, e.Value, e.Reason)
}

// Validate checks that every entry is finite and non-negative, the diagonal
// is zero and the matrix is exactly symmetric.
func (d *Dense) Validate() error {
	for i := 0; i < d.n; i++ {
		row := d.Row(i)
		for j, v := range row {
			switch {
			case math.IsNaN(v) || math.IsInf(v, 0):
				return &ValidationError{Row: i, Col: j, Value: v, Reason: "not finite"}
			case v < 0:
				return &ValidationError{Row: i, Col: j, Value: v, Reason: "negative"}
			case i == j && v != 0:
				return &ValidationError{Row: i, Col: j, Value: v, Reason: "non-zero diagonal"}
			case j > i && v != d.data[j*d.n+i]:
				return &ValidationError{Row: i, Col: j, Value: v, Reason: "asymmetric"}
			}
		}
	}
	return nil
}
