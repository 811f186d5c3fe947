package medoid

// Cost returns the sum over all points of the distance to their medoid.
func Cost(m Matrix, medoids, labels []int) float64 {
	total := 0.0
	for i, c := range labels {
		total += m.Row(i)[medoids[c]]
	}
	return total
}

// Changed counts the positions where a and b differ.
func Changed(a, b []int) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
