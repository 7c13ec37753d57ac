package ohash

// Stats is a point-in-time view of a table's slot array.
type Stats struct {
	Capacity        int
	Count           int
	Occupied        int
	Tombstones      int
	Empty           int
	GrowthThreshold int
	ShrinkThreshold int
	// LongestRun is the longest circular run of non-empty slots, which bounds
	// the number of slots any lookup can visit.
	LongestRun int
	// Resizes counts completed grows and shrinks.
	Resizes uint64
	// AbandonedResizes counts grows and shrinks that were skipped because the
	// new array could not be allocated or would have been out of range.
	AbandonedResizes uint64
}

// Load returns Count as a percentage of Capacity.
func (s Stats) Load() int {
	if s.Capacity == 0 {
		return 0
	}
	return s.Count * 100 / s.Capacity
}

// Stats scans the slot array and returns its occupancy.
func (t *Table) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Stats{
		Capacity:         len(t.slots),
		Count:            t.count,
		GrowthThreshold:  t.growthPct,
		ShrinkThreshold:  t.shrinkPct,
		Resizes:          t.resizes,
		AbandonedResizes: t.abandoned,
	}
	for i := range t.slots {
		switch t.slots[i].state {
		case slotEmpty:
			s.Empty++
		case slotTombstone:
			s.Tombstones++
		case slotOccupied:
			s.Occupied++
		}
	}
	s.LongestRun = longestRun(t.slots)
	return s
}

func longestRun(slots []slot) int {
	capacity := len(slots)
	start := -1
	for i := range slots {
		if slots[i].state == slotEmpty {
			start = i
			break
		}
	}
	if start < 0 {
		return capacity
	}

	longest, run := 0, 0
	for n, i := 0, next(start, capacity); n < capacity; n, i = n+1, next(i, capacity) {
		if slots[i].state == slotEmpty {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Range calls fn for every entry until fn returns false. The order is
// unspecified. fn runs under the read lock and must not call into the table.
// The value passed to fn is borrowed and must not be retained or modified.
func (t *Table) Range(fn func(key string, value []byte) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotOccupied {
			continue
		}
		if !fn(s.key, s.value) {
			return
		}
	}
}
