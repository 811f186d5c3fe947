package medoid

import "github.com/RoaringBitmap/roaring/v2"

// Membership holds the member set of every cluster.
type Membership struct {
	sets []*roaring.Bitmap
}

// NewMembership groups point indices by label. Labels outside [0,k) are
// ignored.
func NewMembership(labels []int, k int) *Membership {
	sets := make([]*roaring.Bitmap, k)
	for c := range sets {
		sets[c] = roaring.New()
	}
	for i, c := range labels {
		if c >= 0 && c < k {
			sets[c].Add(uint32(i))
		}
	}
	return &Membership{sets: sets}
}

// K returns the number of clusters.
func (ms *Membership) K() int { return len(ms.sets) }

// Size returns the number of members of cluster c.
func (ms *Membership) Size(c int) int {
	return int(ms.sets[c].GetCardinality())
}

// Sizes returns the size of every cluster.
func (ms *Membership) Sizes() []int {
	sizes := make([]int, len(ms.sets))
	for c := range ms.sets {
		sizes[c] = ms.Size(c)
	}
	return sizes
}

// Members returns the members of cluster c in ascending order.
func (ms *Membership) Members(c int) []int {
	raw := ms.sets[c].ToArray()
	members := make([]int, len(raw))
	for i, v := range raw {
		members[i] = int(v)
	}
	return members
}

// Empty returns the clusters without members in ascending order.
func (ms *Membership) Empty() []int {
	var empty []int
	for c, s := range ms.sets {
		if s.IsEmpty() {
			empty = append(empty, c)
		}
	}
	return empty
}
