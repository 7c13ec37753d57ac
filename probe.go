package ohash

func next(i, capacity int) int {
	i++
	if i == capacity {
		return 0
	}
	return i
}

func prev(i, capacity int) int {
	if i == 0 {
		return capacity - 1
	}
	return i - 1
}

// find returns the index of the occupied slot holding key. An empty slot ends
// the search early; tombstones are skipped. At most len(slots) slots are
// visited, so a table made entirely of tombstones still terminates.
func find(slots []slot, key string) (int, bool) {
	capacity := len(slots)
	i := index(key, capacity)
	for n := 0; n < capacity; n++ {
		switch s := &slots[i]; s.state {
		case slotEmpty:
			return -1, false
		case slotOccupied:
			if s.key == key {
				return i, true
			}
		}
		i = next(i, capacity)
	}
	return -1, false
}

// probe locates where key belongs. If the key is already stored, probe
// returns its index with match set. Otherwise it returns the first tombstone
// or empty slot on the key's probe path. Scanning carries on past tombstones
// until an empty slot, because a live copy of the key may sit further along
// the chain and must not be duplicated. ok is false only when every slot is
// occupied by other keys.
func probe(slots []slot, key string) (idx int, match, ok bool) {
	capacity := len(slots)
	free := -1
	i := index(key, capacity)
	for n := 0; n < capacity; n++ {
		switch s := &slots[i]; s.state {
		case slotEmpty:
			if free < 0 {
				free = i
			}
			return free, false, true
		case slotTombstone:
			if free < 0 {
				free = i
			}
		case slotOccupied:
			if s.key == key {
				return i, true, true
			}
		}
		i = next(i, capacity)
	}
	return free, false, free >= 0
}

// vacate releases the occupied slot at i. If the following slot is empty no
// probe path can run through i, so it becomes empty along with the tombstones
// directly in front of it. Otherwise it becomes a tombstone so that lookups
// for keys further down the chain still reach them.
func vacate(slots []slot, i int) {
	capacity := len(slots)
	if j := next(i, capacity); j != i && slots[j].state != slotEmpty {
		slots[i].clear(slotTombstone)
		return
	}
	slots[i].clear(slotEmpty)
	for j, n := prev(i, capacity), 1; n < capacity && slots[j].state == slotTombstone; n++ {
		slots[j].clear(slotEmpty)
		j = prev(j, capacity)
	}
}
