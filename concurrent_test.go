package ohash_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/theflywheel/ohash"
	"golang.org/x/sync/errgroup"
)

func TestConcurrentDisjointInserts(t *testing.T) {
	const writers, perWriter, readers = 8, 500, 4

	tbl, err := ohash.New(1)
	require.NoError(t, err)

	done := make(chan struct{})
	var rg errgroup.Group
	for r := 0; r < readers; r++ {
		r := r
		rg.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				default:
				}
				key := fmt.Sprintf("w%d-%d", r, r*7)
				if v, ok := tbl.Get(key); ok && string(v) != key {
					return fmt.Errorf("reader saw %q for %s", v, key)
				}
				_ = tbl.Count()
			}
		})
	}

	var wg errgroup.Group
	for w := 0; w < writers; w++ {
		w := w
		wg.Go(func() error {
			for i := 0; i < perWriter; i++ {
				key := fmt.Sprintf("w%d-%d", w, i)
				res, err := tbl.Insert(key, []byte(key))
				if err != nil {
					return err
				}
				if res != ohash.Inserted {
					return fmt.Errorf("%s: %s", key, res)
				}
			}
			return nil
		})
	}
	require.NoError(t, wg.Wait())
	close(done)
	require.NoError(t, rg.Wait())

	require.Equal(t, writers*perWriter, tbl.Count())
	for w := 0; w < writers; w++ {
		for i := 0; i < perWriter; i++ {
			key := fmt.Sprintf("w%d-%d", w, i)
			v, ok := tbl.Get(key)
			require.True(t, ok, key)
			require.Equal(t, key, string(v))
		}
	}
}

func TestConcurrentInsertRemove(t *testing.T) {
	const workers, perWorker = 6, 400

	tbl, err := ohash.New(8)
	require.NoError(t, err)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d-%d", w, i)
				if _, err := tbl.Insert(key, []byte("v")); err != nil {
					return err
				}
				if i%2 == 1 && !tbl.Remove(key) {
					return fmt.Errorf("%s vanished before its own remove", key)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Equal(t, workers*perWorker/2, tbl.Count())
	st := tbl.Stats()
	require.Equal(t, st.Count, st.Occupied)
}

func TestConcurrentUpsertCounts(t *testing.T) {
	const workers, rounds = 8, 300
	words := []string{"alpha", "beta", "gamma", "delta"}

	tbl, err := ohash.New(2)
	require.NoError(t, err)

	incr := func(old []byte, ok bool) []byte {
		n := 0
		if ok {
			n, _ = strconv.Atoi(string(old))
		}
		return strconv.AppendInt(nil, int64(n+1), 10)
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < rounds; i++ {
				for _, word := range words {
					if _, err := tbl.Upsert(word, incr); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, word := range words {
		v, ok := tbl.Get(word)
		require.True(t, ok)
		require.Equal(t, strconv.Itoa(workers*rounds), string(v))
	}
}
