package wordcount

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/theflywheel/ohash"
	"github.com/valyala/bytebufferpool"
)

// Result is the outcome of one task.
type Result struct {
	Range Range
	// Lines is the number of lines the task owned.
	Lines int
	// Failures counts lines the table refused, such as empty lines.
	Failures int
	// Removed counts keys deleted during the remove phase.
	Removed int
}

// ctxCheckInterval is how many lines a task scans between context checks.
const ctxCheckInterval = 1024

// scanLines calls fn with every line owned by r, without its terminator.
func scanLines(ctx context.Context, fs afero.Fs, r Range, fn func(line []byte)) (int, error) {
	f, err := fs.Open(r.Path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %s", r.Path)
	}
	defer f.Close()

	pos := r.Start
	if r.Start > 0 {
		// Back up one byte so a range that begins exactly on a line start
		// keeps that line; otherwise the partial line belongs to the
		// previous range.
		pos = r.Start - 1
	}
	if _, err := f.Seek(pos, io.SeekStart); err != nil {
		return 0, errors.Wrapf(err, "failed to seek %s to %d", r.Path, pos)
	}

	br := bufio.NewReader(f)
	if r.Start > 0 {
		skipped, err := br.ReadSlice('\n')
		for err == bufio.ErrBufferFull {
			pos += int64(len(skipped))
			skipped, err = br.ReadSlice('\n')
		}
		pos += int64(len(skipped))
		if err == io.EOF {
			return 0, nil
		}
		if err != nil {
			return 0, errors.Wrapf(err, "failed to read %s", r.Path)
		}
	}

	lines := 0
	for pos < r.End {
		if lines%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return lines, err
			}
		}
		line, err := br.ReadBytes('\n')
		if len(line) == 0 && err == io.EOF {
			break
		}
		if err != nil && err != io.EOF {
			return lines, errors.Wrapf(err, "failed to read %s", r.Path)
		}
		pos += int64(len(line))
		lines++
		fn(trimEOL(line))
		if err == io.EOF {
			break
		}
	}
	return lines, nil
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

// CountRange increments the decimal occurrence count of every line in r.
func CountRange(ctx context.Context, fs afero.Fs, r Range, table *ohash.Table) (Result, error) {
	res := Result{Range: r}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	incr := func(old []byte, ok bool) []byte {
		var n uint64
		if ok {
			var err error
			if n, err = strconv.ParseUint(string(old), 10, 64); err != nil {
				return nil
			}
		}
		buf.B = strconv.AppendUint(buf.B[:0], n+1, 10)
		return buf.B
	}

	lines, err := scanLines(ctx, fs, r, func(line []byte) {
		if _, err := table.Upsert(string(line), incr); err != nil {
			res.Failures++
		}
	})
	res.Lines = lines
	return res, err
}

// RemoveRange deletes every line in r from the table.
func RemoveRange(ctx context.Context, fs afero.Fs, r Range, table *ohash.Table) (Result, error) {
	res := Result{Range: r}
	lines, err := scanLines(ctx, fs, r, func(line []byte) {
		key := string(line)
		if _, ok := table.Get(key); !ok {
			return
		}
		if table.Remove(key) {
			res.Removed++
		}
	})
	res.Lines = lines
	return res, err
}
