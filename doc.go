/*
Package ohash provides a concurrent, self-resizing hash table that maps
string keys to byte values using open addressing.

Table is safe for use by many goroutines. Lookups take a shared lock so
readers run in parallel; inserts and removes take the exclusive lock, and any
resize they trigger runs while that lock is held, so no caller ever sees a
half-rebuilt table.

Basic usage:

	import "github.com/theflywheel/ohash"

	t, err := ohash.New(64)
	if err != nil {
		log.Fatal(err)
	}
	defer t.Destroy()

	if _, err := t.Insert("apple", []byte("1")); err != nil {
		log.Fatal(err)
	}

	if v, ok := t.Get("apple"); ok {
		fmt.Println("apple:", string(v))
	}

	t.Remove("apple")

Features:

  - Keys and values are copied on insert; callers keep their buffers
  - 64-bit FNV-1a hashing reduced modulo the current capacity
  - Linear probing with tombstones for deletion
  - Doubles when the load reaches the growth threshold (default 70%) and
    halves when it falls to the shrink threshold (default 30%)
  - Thread-safe with a read/write mutex owned by each table

Implementation Details:

Every slot is empty, a tombstone, or occupied. A lookup walks forward from the
key's home slot, passing over tombstones and stopping at the first empty slot.
Removing an entry leaves a tombstone unless the next slot is already empty, in
which case the slot and any tombstones directly before it revert to empty.

Load is measured as count*100/capacity at the start of each insert and remove
only, so it may sit above or below a threshold between operations. A resize
rehashes every live entry into a new array and drops all tombstones. If the
new array cannot be allocated the resize is skipped and the operation carries
on at the old capacity.

The value returned by Get is the table's own copy. It is never modified in
place, but callers must not modify it either; use GetCopy for a private copy.
*/
package ohash
