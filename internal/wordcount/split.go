// Package wordcount counts line occurrences in text files using a shared
// ohash.Table. Files are cut into byte ranges and each range is scanned by
// its own task; all tasks update the same table.
package wordcount

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Range is a byte range of one file. The task that owns it processes every
// line whose first byte lies in [Start, End).
type Range struct {
	Path  string
	Start int64
	End   int64
}

// Len returns the number of bytes in the range.
func (r Range) Len() int64 {
	return r.End - r.Start
}

// Split cuts each file into at most workers contiguous ranges of roughly
// equal size. The last range of a file always ends at the file size, and
// empty files produce no ranges.
func Split(fs afero.Fs, paths []string, workers int) ([]Range, error) {
	if workers < 1 {
		return nil, errors.Newf("workers must be at least 1, got %d", workers)
	}

	var ranges []Range
	for _, path := range paths {
		fi, err := fs.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", path)
		}
		if fi.IsDir() {
			return nil, errors.Newf("%s is a directory", path)
		}
		size := fi.Size()
		if size == 0 {
			continue
		}

		n := int64(workers)
		if n > size {
			n = size
		}
		chunk := size / n
		for i := int64(0); i < n; i++ {
			r := Range{Path: path, Start: i * chunk, End: (i + 1) * chunk}
			if i == n-1 {
				r.End = size
			}
			ranges = append(ranges, r)
		}
	}
	return ranges, nil
}

// Size returns the total number of bytes covered by ranges.
func Size(ranges []Range) int64 {
	var total int64
	for _, r := range ranges {
		total += r.Len()
	}
	return total
}
