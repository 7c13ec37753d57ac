package wordcount

import (
	"context"

	"github.com/spf13/afero"
	"github.com/theflywheel/ohash"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Phase selects what a run does with each line.
type Phase int

const (
	// PhaseCount increments each line's occurrence count.
	PhaseCount Phase = iota
	// PhaseRemove deletes each line's entry.
	PhaseRemove
)

func (p Phase) String() string {
	switch p {
	case PhaseCount:
		return "count"
	case PhaseRemove:
		return "remove"
	}
	return "unknown"
}

// Config holds what tasks need besides their range and the table.
type Config struct {
	FS     afero.Fs
	Logger *zap.Logger
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Run starts one task per range against the shared table and waits for all
// of them. Results are returned in range order. The first task error cancels
// the others.
func Run(ctx context.Context, cfg Config, ranges []Range, table *ohash.Table, phase Phase) ([]Result, error) {
	task := CountRange
	if phase == PhaseRemove {
		task = RemoveRange
	}
	log := cfg.logger()

	results := make([]Result, len(ranges))
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			res, err := task(ctx, cfg.FS, r, table)
			results[i] = res
			if err != nil {
				return err
			}
			log.Debug("task finished",
				zap.Int("task", i),
				zap.Stringer("phase", phase),
				zap.String("path", r.Path),
				zap.Int64("start", r.Start),
				zap.Int64("end", r.End),
				zap.Int("lines", res.Lines),
				zap.Int("fails", res.Failures),
				zap.Int("removed", res.Removed))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Failures sums the failures across results.
func Failures(results []Result) int {
	total := 0
	for _, r := range results {
		total += r.Failures
	}
	return total
}
