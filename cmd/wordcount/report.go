package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/theflywheel/ohash"
	"github.com/theflywheel/ohash/internal/wordcount"
)

func printf(out io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(out, format, args...)
}

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(out)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetHeader(header)
	return t
}

func printTasks(out io.Writer, results []wordcount.Result) {
	t := newTable(out, "task", "file", "range", "lines", "fails", "removed")
	for i, r := range results {
		t.Append([]string{
			strconv.Itoa(i),
			r.Range.Path,
			fmt.Sprintf("%d-%d", r.Range.Start, r.Range.End),
			humanize.Comma(int64(r.Lines)),
			strconv.Itoa(r.Failures),
			strconv.Itoa(r.Removed),
		})
	}
	t.Render()
}

func printStats(out io.Writer, title string, input int64, st ohash.Stats) {
	printf(out, "\n%s (%s of input)\n", title, humanize.Bytes(uint64(input)))
	t := newTable(out, "capacity", "count", "occupied", "tombstones", "load", "longest run", "resizes", "abandoned")
	t.Append([]string{
		humanize.Comma(int64(st.Capacity)),
		humanize.Comma(int64(st.Count)),
		humanize.Comma(int64(st.Occupied)),
		humanize.Comma(int64(st.Tombstones)),
		fmt.Sprintf("%d%%", st.Load()),
		strconv.Itoa(st.LongestRun),
		strconv.FormatUint(st.Resizes, 10),
		strconv.FormatUint(st.AbandonedResizes, 10),
	})
	t.Render()
}

func printTop(out io.Writer, entries []wordcount.Entry) {
	if len(entries) == 0 {
		return
	}
	printf(out, "\n")
	t := newTable(out, "line", "count")
	for _, e := range entries {
		t.Append([]string{e.Word, humanize.Comma(int64(e.Count))})
	}
	t.Render()
}
