package partition

import "sort"

// Range is a half-open interval [Lo, Hi).
type Range struct {
	Lo int
	Hi int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Ranges splits [0,n) into at most parts contiguous chunks.
//
// parts is capped to n so no chunk is empty. It returns nil when n <= 0 or
// parts <= 0.
func Ranges(n, parts int) []Range {
	if n <= 0 || parts <= 0 {
		return nil
	}
	if parts > n {
		parts = n
	}

	base := n / parts
	extra := n % parts

	out := make([]Range, parts)
	lo := 0
	for i := range out {
		size := base
		if i < extra {
			size++
		}
		out[i] = Range{Lo: lo, Hi: lo + size}
		lo += size
	}
	return out
}

// Allocate distributes workers across clusters of the given sizes.
//
// When workers <= len(sizes) every cluster gets exactly one worker and the
// pool queues the excess. Otherwise each cluster starts with one worker, then
// receives floor(size/total * (workers-len(sizes))) extra workers, and the
// remaining workers are handed out one at a time in descending size order
// (ties by ascending cluster index) until the sum equals workers.
func Allocate(sizes []int, workers int) []int {
	k := len(sizes)
	if k == 0 {
		return nil
	}

	alloc := make([]int, k)
	for c := range alloc {
		alloc[c] = 1
	}
	if workers <= k {
		return alloc
	}

	total := 0
	for _, s := range sizes {
		total += s
	}
	if total == 0 {
		return alloc
	}

	surplus := workers - k
	assigned := k
	for c, s := range sizes {
		extra := s * surplus / total
		alloc[c] += extra
		assigned += extra
	}

	order := BySizeDesc(sizes)
	for i := 0; assigned < workers; i++ {
		alloc[order[i%k]]++
		assigned++
	}
	return alloc
}

// BySizeDesc returns cluster indices ordered by descending size. Equal sizes
// keep ascending index order.
func BySizeDesc(sizes []int) []int {
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sizes[order[a]] > sizes[order[b]]
	})
	return order
}
