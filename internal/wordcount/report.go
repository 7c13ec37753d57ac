package wordcount

import (
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/theflywheel/ohash"
)

// Entry is one word and its count.
type Entry struct {
	Word  string
	Count uint64
}

// Top returns the n most frequent words, ties broken alphabetically. n <= 0
// returns every word. Values that are not decimal counts are skipped.
func Top(table *ohash.Table, n int) []Entry {
	var entries []Entry
	table.Range(func(key string, value []byte) bool {
		c, err := strconv.ParseUint(string(value), 10, 64)
		if err == nil {
			entries = append(entries, Entry{Word: key, Count: c})
		}
		return true
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Fingerprint summarizes a table's contents independently of slot order, so
// two tables holding the same entries at any capacity fingerprint equally.
func Fingerprint(table *ohash.Table) uint64 {
	var sum uint64
	d := xxhash.New()
	table.Range(func(key string, value []byte) bool {
		d.Reset()
		_, _ = d.WriteString(key)
		_, _ = d.Write([]byte{0})
		_, _ = d.Write(value)
		sum += d.Sum64()
		return true
	})
	return sum
}
