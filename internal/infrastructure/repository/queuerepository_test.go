package repository

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "caseflow/internal/domain/assignment/value_objects"
)

// Listing order and reported positions must agree: an entry's 1-indexed rank
// is one plus the number of rows sorting strictly ahead of it.
func TestQueueDrainOrderAndPositionAgree(t *testing.T) {
	base := int64(1_770_000_000_000)
	entries := []struct {
		workItemID string
		key        drainKey
	}{
		{"TKT-1", drainKey{PriorityWeight: vo.PriorityUrgent.Weight(), CreatedAt: base + 1000, ID: 1}},
		{"TKT-2", drainKey{PriorityWeight: vo.PriorityUrgent.Weight(), CreatedAt: base + 2000, ID: 2}},
		{"TKT-3", drainKey{PriorityWeight: vo.PriorityHigh.Weight(), CreatedAt: base + 3000, ID: 3}},
		{"TKT-4", drainKey{PriorityWeight: vo.PriorityNormal.Weight(), CreatedAt: base + 4000, ID: 4}},
	}

	// Shuffle into insertion-independent input order before sorting.
	shuffled := []int{2, 0, 3, 1}
	sorted := make([]int, len(shuffled))
	copy(sorted, shuffled)
	sort.SliceStable(sorted, func(i, j int) bool {
		return drainLess(entries[sorted[i]].key, entries[sorted[j]].key)
	})

	var order []string
	for _, idx := range sorted {
		order = append(order, entries[idx].workItemID)
	}
	require.Equal(t, []string{"TKT-1", "TKT-2", "TKT-3", "TKT-4"},
		order, "urgent drains before high before normal, FIFO within a tier")

	for rank, idx := range sorted {
		ahead := 0
		for _, other := range entries {
			if other.workItemID == entries[idx].workItemID {
				continue
			}
			if drainLess(other.key, entries[idx].key) {
				ahead++
			}
		}
		assert.Equal(t, rank+1, ahead+1,
			"position of %s must match its listing rank", entries[idx].workItemID)
	}
}

func TestQueueDrainOrderTieBreaks(t *testing.T) {
	a := drainKey{PriorityWeight: 4, CreatedAt: 100, ID: 1}
	b := drainKey{PriorityWeight: 4, CreatedAt: 100, ID: 2}

	assert.True(t, drainLess(a, b), "equal weight and timestamp fall back to id")
	assert.False(t, drainLess(b, a))
	assert.False(t, drainLess(a, a), "the order is strict")
}

// The bind argument list must line up with the predicate's placeholders, or
// the counted set silently diverges from drain order.
func TestQueueAheadPredicateArity(t *testing.T) {
	key := drainKey{PriorityWeight: 3, CreatedAt: 42, ID: 7}
	assert.Equal(t, strings.Count(aheadPredicate, "?"), len(aheadArgs(key)))
}
