package ohash

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument is returned when an insert is given an empty key or
	// a nil value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrZeroOrOverflowSize is returned when a capacity is zero or when doubling
	// or halving it would leave the representable range.
	ErrZeroOrOverflowSize = errors.New("zero or overflowing table size")

	// ErrAllocationFailure is returned when a slot array cannot be allocated.
	ErrAllocationFailure = errors.New("slot allocation failed")

	// ErrResizeTooSmall is returned when a shrink target cannot hold the
	// entries currently in the table.
	ErrResizeTooSmall = errors.New("resize target too small for live entries")

	// ErrTableFull is returned by an insert that found no reusable slot. It can
	// only happen after the growth that insert triggered was abandoned.
	ErrTableFull = errors.New("hash table full")

	// ErrDestroyed is returned by writes to a destroyed table.
	ErrDestroyed = errors.New("hash table destroyed")
)
