package ohash

import (
	"bytes"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// InsertResult reports what an insert did to the table.
type InsertResult int

const (
	// Rejected means nothing was written.
	Rejected InsertResult = iota
	// Inserted means a new key was placed and the count went up by one.
	Inserted
	// Updated means an existing key had its value replaced.
	Updated
)

func (r InsertResult) String() string {
	switch r {
	case Rejected:
		return "rejected"
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	}
	return "unknown"
}

// Table is a concurrent open-addressing hash table mapping string keys to
// byte values. Lookups share a read lock; inserts and removes hold the write
// lock, and any resize they trigger runs under it.
type Table struct {
	mu        sync.RWMutex
	slots     []slot
	count     int
	growthPct int
	shrinkPct int
	limit     int
	logger    *zap.Logger

	resizes   uint64
	abandoned uint64
	destroyed bool
}

// New creates a table with initialCapacity empty slots.
func New(initialCapacity int, opts ...Option) (*Table, error) {
	t := &Table{
		growthPct: DefaultGrowthThreshold,
		shrinkPct: DefaultShrinkThreshold,
		limit:     DefaultCapacityLimit,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	slots, err := t.allocSlots(initialCapacity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create table")
	}
	t.slots = slots
	return t, nil
}

// Insert stores a copy of value under a copy of key. The caller keeps
// ownership of its arguments.
func (t *Table) Insert(key string, value []byte) (InsertResult, error) {
	if key == "" || value == nil {
		return Rejected, errors.Wrap(ErrInvalidArgument, "insert requires a key and a value")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i, match, err := t.prepareLocked(key)
	if err != nil {
		return Rejected, err
	}
	if match {
		t.slots[i].set(value)
		return Updated, nil
	}
	t.slots[i].fill(key, value)
	t.count++
	return Inserted, nil
}

// Upsert replaces the value under key with fn's result in a single write
// critical section. fn receives the stored value (borrowed, ok=true) or nil
// (ok=false) and must return a non-nil value; a nil result leaves the entries
// untouched and reports ErrInvalidArgument. fn must not call into the table.
func (t *Table) Upsert(key string, fn func(old []byte, ok bool) []byte) (InsertResult, error) {
	if key == "" || fn == nil {
		return Rejected, errors.Wrap(ErrInvalidArgument, "upsert requires a key and a function")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i, match, err := t.prepareLocked(key)
	if err != nil {
		return Rejected, err
	}

	var old []byte
	if match {
		old = t.slots[i].value
	}
	value := fn(old, match)
	if value == nil {
		return Rejected, errors.Wrapf(ErrInvalidArgument, "upsert of %q produced no value", key)
	}

	if match {
		t.slots[i].set(value)
		return Updated, nil
	}
	t.slots[i].fill(key, value)
	t.count++
	return Inserted, nil
}

// prepareLocked applies the growth trigger and returns the slot key belongs
// in. The load is sampled once, before placement, so the new key hashes
// against the post-growth capacity.
func (t *Table) prepareLocked(key string) (int, bool, error) {
	if t.destroyed {
		return 0, false, ErrDestroyed
	}
	if t.load() >= t.growthPct {
		if err := t.grow(); err != nil {
			t.abandon("grow", err)
		}
	}
	i, match, ok := probe(t.slots, key)
	if !ok {
		return 0, false, errors.Wrapf(ErrTableFull, "no free slot among %d", len(t.slots))
	}
	return i, match, nil
}

// Get returns the value stored under key. The slice is the table's own copy
// and must not be modified; it is not changed by later writes, which install
// fresh copies, but it stops being the current value once key is updated or
// removed. Use GetCopy to obtain a value the caller owns.
func (t *Table) Get(key string) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.count == 0 {
		return nil, false
	}
	i, ok := find(t.slots, key)
	if !ok {
		return nil, false
	}
	return t.slots[i].value, true
}

// GetCopy is like Get but returns a copy of the value.
func (t *Table) GetCopy(key string) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.count == 0 {
		return nil, false
	}
	i, ok := find(t.slots, key)
	if !ok {
		return nil, false
	}
	return bytes.Clone(t.slots[i].value), true
}

// Remove deletes key and reports whether it was present. When the load is at
// or below the shrink threshold the table is halved before the key is
// located.
func (t *Table) Remove(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count == 0 {
		return false
	}
	if t.load() <= t.shrinkPct {
		if err := t.shrink(); err != nil {
			t.abandon("shrink", err)
		}
	}

	i, ok := find(t.slots, key)
	if !ok {
		return false
	}
	t.count--
	vacate(t.slots, i)
	return true
}

// Count returns the number of entries in the table.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// Capacity returns the number of slots in the table.
func (t *Table) Capacity() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}

// SetGrowthThreshold sets the load percentage at which inserts grow the
// table. Values outside 1..99 are ignored.
func (t *Table) SetGrowthThreshold(percent int) {
	if !validThreshold(percent) {
		return
	}
	t.mu.Lock()
	t.growthPct = percent
	t.mu.Unlock()
}

// SetShrinkThreshold sets the load percentage at which removes shrink the
// table. Values outside 1..99 are ignored.
func (t *Table) SetShrinkThreshold(percent int) {
	if !validThreshold(percent) {
		return
	}
	t.mu.Lock()
	t.shrinkPct = percent
	t.mu.Unlock()
}

// GrowthThreshold returns the current growth threshold.
func (t *Table) GrowthThreshold() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.growthPct
}

// ShrinkThreshold returns the current shrink threshold.
func (t *Table) ShrinkThreshold() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.shrinkPct
}

// Destroy releases every entry and the slot array. It does not take the lock:
// the caller must ensure no other operation is running. Writes to a destroyed
// table fail with ErrDestroyed and reads find nothing.
func (t *Table) Destroy() {
	for i := range t.slots {
		t.slots[i].clear(slotEmpty)
	}
	t.slots = nil
	t.count = 0
	t.destroyed = true
}
