package ohash

import (
	"bytes"
	"strings"
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotTombstone
	slotOccupied
)

func (s slotState) String() string {
	switch s {
	case slotEmpty:
		return "empty"
	case slotTombstone:
		return "tombstone"
	case slotOccupied:
		return "occupied"
	}
	return "unknown"
}

// slot is one cell of the table. Only occupied slots carry a key and value,
// and both are owned by the table.
type slot struct {
	state slotState
	key   string
	value []byte
}

// fill stores copies of key and value, detaching them from caller memory.
func (s *slot) fill(key string, value []byte) {
	s.state = slotOccupied
	s.key = strings.Clone(key)
	s.value = bytes.Clone(value)
}

// set replaces the value with a fresh copy. The previous slice is left
// untouched so references handed out by Get stay stable.
func (s *slot) set(value []byte) {
	s.value = bytes.Clone(value)
}

// clear drops the key and value and leaves the slot in the given state.
func (s *slot) clear(state slotState) {
	s.state = state
	s.key = ""
	s.value = nil
}
