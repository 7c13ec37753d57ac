package ohash

import (
	"math"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// maxCapacity is the largest capacity that can still be doubled without
// overflowing int.
const maxCapacity = math.MaxInt / 2

func (t *Table) allocSlots(capacity int) ([]slot, error) {
	if capacity < 1 || capacity > maxCapacity {
		return nil, errors.Wrapf(ErrZeroOrOverflowSize, "capacity %d", capacity)
	}
	if capacity > t.limit {
		return nil, errors.Wrapf(ErrAllocationFailure,
			"%d slots exceeds limit of %d", capacity, t.limit)
	}
	return make([]slot, capacity), nil
}

// load returns the occupancy as a percentage. The multiplication happens
// before the division so small tables do not truncate to zero.
func (t *Table) load() int {
	return t.count * 100 / len(t.slots)
}

func (t *Table) grow() error {
	capacity := len(t.slots)
	if capacity > maxCapacity/2 {
		return errors.Wrapf(ErrZeroOrOverflowSize, "cannot double capacity %d", capacity)
	}
	return t.resize(capacity * 2)
}

func (t *Table) shrink() error {
	half := len(t.slots) / 2
	if half < 1 {
		return errors.Wrapf(ErrZeroOrOverflowSize, "cannot halve capacity %d", len(t.slots))
	}
	if t.count > half {
		return errors.Wrapf(ErrResizeTooSmall, "%d entries into %d slots", t.count, half)
	}
	return t.resize(half)
}

// resize rehashes every occupied slot into a fresh array of the given
// capacity. Tombstones are dropped and count is rebuilt from the entries
// actually placed. On error the table is left exactly as it was.
func (t *Table) resize(capacity int) error {
	old := len(t.slots)
	t.logger.Debug("resizing table",
		zap.Int("from", old), zap.Int("to", capacity), zap.Int("count", t.count))

	slots, err := t.allocSlots(capacity)
	if err != nil {
		return err
	}

	count := 0
	for i := range t.slots {
		s := &t.slots[i]
		if s.state != slotOccupied {
			continue
		}
		j, _, ok := probe(slots, s.key)
		if !ok {
			return errors.AssertionFailedf("no slot for key %q while resizing %d -> %d",
				s.key, old, capacity)
		}
		// Ownership moves to the new array; no copy is needed.
		slots[j] = slot{state: slotOccupied, key: s.key, value: s.value}
		count++
	}

	t.slots = slots
	t.count = count
	t.resizes++

	t.logger.Debug("resize complete",
		zap.Int("capacity", capacity), zap.Int("count", count))
	return nil
}

// abandon records a resize that could not be carried out. The triggering
// operation continues against the current array.
func (t *Table) abandon(op string, err error) {
	t.abandoned++
	t.logger.Warn("resize abandoned",
		zap.String("op", op),
		zap.Int("capacity", len(t.slots)),
		zap.Int("count", t.count),
		zap.Error(err))
}
