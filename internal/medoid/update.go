package medoid

import (
	"context"
	"fmt"

	"github.com/hupe1980/kmedoids/internal/partition"
	"github.com/hupe1980/kmedoids/internal/pool"
)

// EmptyPolicy decides what happens to a cluster that lost all members.
type EmptyPolicy int

const (
	// EmptyRetain keeps the previous medoid of the cluster.
	EmptyRetain EmptyPolicy = iota
	// EmptyReseed moves the medoid to the non-medoid point farthest from
	// the current medoid set.
	EmptyReseed
	// EmptyFail aborts the update with an *EmptyError.
	EmptyFail
)

// EmptyError reports a cluster without members under EmptyFail.
type EmptyError struct {
	Cluster int
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("cluster %d has no members", e.Cluster)
}

// Candidate is the best medoid found within a slice of a cluster.
type Candidate struct {
	// Index is the point index, -1 if the slice was empty.
	Index int
	// Sum is the summed distance from Index to every cluster member.
	Sum float64
}

// BestInRange scans members[r.Lo:r.Hi] and returns the member with the
// smallest summed distance to all members. Ties go to the first member
// scanned, which is the lowest index because members are sorted.
func BestInRange(m Matrix, members []int, r partition.Range) Candidate {
	best := Candidate{Index: -1}
	for idx := r.Lo; idx < r.Hi; idx++ {
		i := members[idx]
		row := m.Row(i)
		sum := 0.0
		for _, j := range members {
			sum += row[j]
		}
		if best.Index == -1 || sum < best.Sum {
			best = Candidate{Index: i, Sum: sum}
		}
	}
	return best
}

type updateTask struct {
	cluster int
	members []int
	r       partition.Range
}

// Update recomputes the medoid of every cluster as its 1-median.
//
// Workers are allocated with partition.Allocate. A cluster with m workers is
// split into m contiguous member slices, each scanned by its own task; the
// slice winners are reduced in slice order. All tasks of all clusters go out
// as one batch. prev supplies the medoids used by the empty-cluster policy
// and must have length k.
func Update(ctx context.Context, p *pool.Pool, m Matrix, labels, prev []int, policy EmptyPolicy) ([]int, error) {
	k := len(prev)
	ms := NewMembership(labels, k)
	alloc := partition.Allocate(ms.Sizes(), p.Size())

	var tasks []updateTask
	for c := 0; c < k; c++ {
		members := ms.Members(c)
		if len(members) == 0 {
			continue
		}
		for _, r := range partition.Ranges(len(members), alloc[c]) {
			tasks = append(tasks, updateTask{cluster: c, members: members, r: r})
		}
	}

	candidates, err := pool.Map(ctx, p, len(tasks), func(i int) (Candidate, error) {
		t := tasks[i]
		return BestInRange(m, t.members, t.r), nil
	})
	if err != nil {
		return nil, err
	}

	next := make([]int, k)
	best := make([]Candidate, k)
	for c := range best {
		best[c] = Candidate{Index: -1}
	}
	for i, cand := range candidates {
		c := tasks[i].cluster
		if best[c].Index == -1 || cand.Sum < best[c].Sum {
			best[c] = cand
		}
	}
	for c := range next {
		next[c] = best[c].Index
	}

	if empty := ms.Empty(); len(empty) > 0 {
		if err := resolveEmpty(m, next, prev, empty, policy); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// resolveEmpty fills next[c] for every empty cluster c in ascending order.
func resolveEmpty(m Matrix, next, prev, empty []int, policy EmptyPolicy) error {
	switch policy {
	case EmptyFail:
		return &EmptyError{Cluster: empty[0]}
	case EmptyReseed:
		isEmpty := make(map[int]bool, len(empty))
		for _, c := range empty {
			isEmpty[c] = true
		}
		set := make([]int, 0, len(next))
		for c, idx := range next {
			if !isEmpty[c] {
				set = append(set, idx)
			}
		}
		for _, c := range empty {
			idx, ok := farthestFrom(m, set)
			if !ok {
				idx = prev[c]
			}
			next[c] = idx
			set = append(set, idx)
		}
	default:
		for _, c := range empty {
			next[c] = prev[c]
		}
	}
	return nil
}

// farthestFrom returns the point outside set with the largest distance to
// its closest member of set. Ties go to the lowest index.
func farthestFrom(m Matrix, set []int) (int, bool) {
	n := m.Len()
	if len(set) == 0 {
		return 0, n > 0
	}
	in := make([]bool, n)
	for _, idx := range set {
		in[idx] = true
	}

	best, bestDist := -1, 0.0
	for i := 0; i < n; i++ {
		if in[i] {
			continue
		}
		row := m.Row(i)
		d := row[set[0]]
		for _, s := range set[1:] {
			if row[s] < d {
				d = row[s]
			}
		}
		if best == -1 || d > bestDist {
			best, bestDist = i, d
		}
	}
	return best, best != -1
}
