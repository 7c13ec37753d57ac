// Package ohash_test provides scale benchmarks for the table.
//
// Scale benchmarks run once regardless of -benchtime and append their
// metrics to benchmark_history/latest.json at the repository root, so runs
// can be compared over time.
package ohash_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/theflywheel/ohash"
)

// BenchmarkMetrics represents metrics for a single benchmark
type BenchmarkMetrics struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Operations  int                `json:"operations"`
	NsPerOp     float64            `json:"ns_per_op"`
	BytesPerOp  int                `json:"bytes_per_op,omitempty"`
	AllocsPerOp int                `json:"allocs_per_op,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

// historyFs is where results are written.
var historyFs = afero.NewOsFs()

func heapInUse() uint64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapInuse
}

// heapGrowth returns how much the in-use heap grew since before.
func heapGrowth(before uint64) uint64 {
	after := heapInUse()
	if after < before {
		return 0
	}
	return after - before
}

// getMemoryUsage returns the current memory stats as a formatted string
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return "Memory: Alloc=" + humanize.Bytes(m.Alloc) + " Sys=" + humanize.Bytes(m.Sys)
}

// recordTableStats copies the table's shape into the metrics.
func recordTableStats(metrics *BenchmarkMetrics, tbl *ohash.Table) {
	st := tbl.Stats()
	metrics.Metrics["capacity"] = float64(st.Capacity)
	metrics.Metrics["count"] = float64(st.Count)
	metrics.Metrics["tombstones"] = float64(st.Tombstones)
	metrics.Metrics["load_pct"] = float64(st.Load())
	metrics.Metrics["longest_run"] = float64(st.LongestRun)
	metrics.Metrics["resizes"] = float64(st.Resizes)
}

func rate(ops int, d time.Duration) float64 {
	return float64(ops) / d.Seconds()
}

// saveBenchmarkResult appends a result to the summary file in the
// benchmark_history directory at the repository root.
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get current directory")
	}
	benchmarkDir := filepath.Join(filepath.Dir(currentDir), "benchmark_history")
	if err := historyFs.MkdirAll(benchmarkDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		Results:   []BenchmarkMetrics{metrics},
	}

	latestFile := filepath.Join(benchmarkDir, resultsFile)
	if existing, err := afero.ReadFile(historyFs, latestFile); err == nil {
		var prev BenchmarkSummary
		if err := json.Unmarshal(existing, &prev); err == nil {
			summary.Results = append(prev.Results, metrics)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error marshaling JSON")
	}
	if err := afero.WriteFile(historyFs, latestFile, data, 0o644); err != nil {
		return errors.Wrap(err, "error writing file")
	}
	return nil
}
