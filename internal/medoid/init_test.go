package medoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarthestPoint(t *testing.T) {
	t.Run("SpreadsMedoids", func(t *testing.T) {
		m := linePoints(0, 1, 2, 50, 51, 100)
		medoids, err := FarthestPoint(m, 3, newRNG(1))
		require.NoError(t, err)
		require.Len(t, medoids, 3)

		// Whatever the first pick, the three picks land in the three groups.
		groups := map[int]bool{}
		for _, idx := range medoids {
			switch {
			case idx <= 2:
				groups[0] = true
			case idx <= 4:
				groups[1] = true
			default:
				groups[2] = true
			}
		}
		assert.Len(t, groups, 3)
	})

	t.Run("Deterministic", func(t *testing.T) {
		m := randomPlane(60, 7)
		a, err := FarthestPoint(m, 5, newRNG(42))
		require.NoError(t, err)
		b, err := FarthestPoint(m, 5, newRNG(42))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("TiesGoToLowestIndex", func(t *testing.T) {
		// All off-diagonal distances equal: after the first pick every
		// remaining point ties, so picks ascend over the unchosen points.
		m := dense{
			{0, 1, 1, 1},
			{1, 0, 1, 1},
			{1, 1, 0, 1},
			{1, 1, 1, 0},
		}
		medoids, err := FarthestPoint(m, 3, newRNG(3))
		require.NoError(t, err)
		first := medoids[0]
		var want []int
		for i := 0; i < 4 && len(want) < 2; i++ {
			if i != first {
				want = append(want, i)
			}
		}
		assert.Equal(t, want, medoids[1:])
	})

	t.Run("KEqualsN", func(t *testing.T) {
		m := randomPlane(9, 3)
		medoids, err := FarthestPoint(m, 9, newRNG(5))
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, medoids)
	})

	t.Run("DuplicatePointsStayDistinct", func(t *testing.T) {
		m := linePoints(3, 3, 3)
		medoids, err := FarthestPoint(m, 3, newRNG(9))
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{0, 1, 2}, medoids)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := FarthestPoint(fourPoints, 0, newRNG(1))
		assert.ErrorIs(t, err, ErrInvalidK)
		_, err = FarthestPoint(fourPoints, 5, newRNG(1))
		assert.ErrorIs(t, err, ErrInvalidK)
	})
}

func TestRandomSample(t *testing.T) {
	m := randomPlane(20, 11)

	a, err := RandomSample(m, 6, newRNG(8))
	require.NoError(t, err)
	b, err := RandomSample(m, 6, newRNG(8))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	seen := map[int]bool{}
	for _, idx := range a {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 20)
		seen[idx] = true
	}
	assert.Len(t, seen, 6)

	_, err = RandomSample(m, 21, newRNG(8))
	assert.ErrorIs(t, err, ErrInvalidK)
}
