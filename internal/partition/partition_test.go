package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRanges(t *testing.T) {
	t.Run("EvenSplit", func(t *testing.T) {
		got := Ranges(8, 4)
		assert.Equal(t, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}}, got)
	})

	t.Run("UnevenSplit", func(t *testing.T) {
		got := Ranges(10, 3)
		assert.Equal(t, []Range{{0, 4}, {4, 7}, {7, 10}}, got)
	})

	t.Run("MorePartsThanItems", func(t *testing.T) {
		got := Ranges(3, 8)
		assert.Len(t, got, 3)
		for _, r := range got {
			assert.Equal(t, 1, r.Len())
		}
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Nil(t, Ranges(0, 4))
		assert.Nil(t, Ranges(4, 0))
	})

	t.Run("CoversEveryIndexOnce", func(t *testing.T) {
		for n := 1; n < 40; n++ {
			for parts := 1; parts < 12; parts++ {
				ranges := Ranges(n, parts)
				next := 0
				for _, r := range ranges {
					assert.Equal(t, next, r.Lo)
					assert.Greater(t, r.Len(), 0)
					next = r.Hi
				}
				assert.Equal(t, n, next)
			}
		}
	})
}

func TestAllocate(t *testing.T) {
	t.Run("FewerWorkersThanClusters", func(t *testing.T) {
		assert.Equal(t, []int{1, 1, 1, 1, 1}, Allocate([]int{5, 4, 3, 2, 1}, 3))
	})

	t.Run("EqualWorkersAndClusters", func(t *testing.T) {
		assert.Equal(t, []int{1, 1, 1}, Allocate([]int{9, 1, 1}, 3))
	})

	t.Run("ProportionalSurplus", func(t *testing.T) {
		// surplus 4: floor(60/100*4)=2, floor(30/100*4)=1, floor(10/100*4)=0
		// one leftover goes to the largest cluster.
		assert.Equal(t, []int{4, 2, 1}, Allocate([]int{60, 30, 10}, 7))
	})

	t.Run("LeftoverByDescendingSize", func(t *testing.T) {
		// surplus 3 over equal thirds: floors are all 1, nothing left over.
		assert.Equal(t, []int{2, 2, 2}, Allocate([]int{10, 10, 10}, 6))
		// surplus 2 over equal thirds: floors are 0, leftovers go to 0 then 1.
		assert.Equal(t, []int{2, 2, 1}, Allocate([]int{10, 10, 10}, 5))
		// leftover follows size, not index.
		assert.Equal(t, []int{1, 2, 1}, Allocate([]int{3, 5, 2}, 4))
	})

	t.Run("SumsToWorkers", func(t *testing.T) {
		sizes := []int{17, 3, 0, 41, 8, 1}
		for w := len(sizes); w < 64; w++ {
			alloc := Allocate(sizes, w)
			sum := 0
			for _, a := range alloc {
				assert.GreaterOrEqual(t, a, 1)
				sum += a
			}
			assert.Equal(t, w, sum)
		}
	})

	t.Run("NoClusters", func(t *testing.T) {
		assert.Nil(t, Allocate(nil, 4))
	})
}

func TestBySizeDesc(t *testing.T) {
	assert.Equal(t, []int{1, 0, 3, 2}, BySizeDesc([]int{4, 7, 1, 4}))
}
