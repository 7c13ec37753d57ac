package main

import (
	"fmt"
	"log"

	"github.com/theflywheel/ohash"
)

func main() {
	// A two-slot table that doubles on its third insert.
	tbl, err := ohash.New(2)
	if err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}
	defer tbl.Destroy()

	for _, kv := range [][2]string{{"x", "1"}, {"y", "2"}, {"z", "3"}} {
		res, err := tbl.Insert(kv[0], []byte(kv[1]))
		if err != nil {
			log.Fatalf("Failed to insert %s: %v", kv[0], err)
		}
		fmt.Printf("insert %s => %s (capacity %d, count %d)\n", kv[0], res, tbl.Capacity(), tbl.Count())
	}

	// Overwriting keeps the count and returns Updated.
	res, err := tbl.Insert("x", []byte("10"))
	if err != nil {
		log.Fatalf("Failed to update x: %v", err)
	}
	v, _ := tbl.Get("x")
	fmt.Printf("insert x => %s, x = %s, count %d\n", res, v, tbl.Count())

	// Counting with Upsert never loses an increment under concurrency.
	for i := 0; i < 3; i++ {
		_, err := tbl.Upsert("hits", func(old []byte, ok bool) []byte {
			n := 0
			if ok {
				fmt.Sscan(string(old), &n)
			}
			return []byte(fmt.Sprint(n + 1))
		})
		if err != nil {
			log.Fatalf("Failed to upsert: %v", err)
		}
	}
	hits, _ := tbl.Get("hits")
	fmt.Printf("hits = %s\n", hits)

	for _, k := range []string{"x", "y", "z", "hits"} {
		fmt.Printf("remove %s => %t (capacity %d, count %d)\n", k, tbl.Remove(k), tbl.Capacity(), tbl.Count())
	}
	_, found := tbl.Get("x")
	fmt.Printf("get x after remove => found %t\n", found)

	st := tbl.Stats()
	fmt.Printf("resizes %d, tombstones %d\n", st.Resizes, st.Tombstones)
}
