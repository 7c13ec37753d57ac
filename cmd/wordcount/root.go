package main

import (
	"context"
	"io"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/theflywheel/ohash"
	"github.com/theflywheel/ohash/internal/wordcount"
	"go.uber.org/zap"
)

type options struct {
	capacity int
	workers  int
	growth   int
	shrink   int
	top      int
	remove   bool
	verify   bool
	verbose  bool
}

func newRootCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	opts := options{
		capacity: 1000,
		workers:  runtime.GOMAXPROCS(0),
		growth:   ohash.DefaultGrowthThreshold,
		shrink:   ohash.DefaultShrinkThreshold,
		top:      10,
	}

	cmd := &cobra.Command{
		Use:   "wordcount [flags] FILE...",
		Short: "count line occurrences with a shared hash table",
		Long: `
  Counts how many times each line occurs across the given files. Every file
  is cut into one byte range per worker and the ranges are scanned
  concurrently, all updating the same table.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(args); err != nil {
				return err
			}
			return run(cmd, fs, out, opts, args)
		},
	}

	bindFlags(cmd.Flags(), &opts)
	return cmd
}

func bindFlags(f *pflag.FlagSet, opts *options) {
	f.IntVarP(&opts.capacity, "capacity", "c", opts.capacity, "initial table capacity")
	f.IntVarP(&opts.workers, "workers", "w", opts.workers, "number of ranges per file")
	f.IntVar(&opts.growth, "growth", opts.growth, "load percentage that doubles the table (1-99)")
	f.IntVar(&opts.shrink, "shrink", opts.shrink, "load percentage that halves the table (1-99)")
	f.IntVarP(&opts.top, "top", "n", opts.top, "number of most frequent lines to print, 0 for all")
	f.BoolVar(&opts.remove, "remove", false, "delete every counted line afterwards")
	f.BoolVar(&opts.verify, "verify", false, "recount with a single task and compare the results")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log table resizes and task progress")
}

func (o options) validate(args []string) error {
	if len(args) == 0 {
		return errors.New("at least one file is required")
	}
	if o.capacity < 1 {
		return errors.Newf("capacity must be at least 1, got %d", o.capacity)
	}
	if o.workers < 1 {
		return errors.Newf("workers must be at least 1, got %d", o.workers)
	}
	if o.growth < 1 || o.growth > 99 {
		return errors.Newf("growth threshold must be within 1-99, got %d", o.growth)
	}
	if o.shrink < 1 || o.shrink > 99 {
		return errors.Newf("shrink threshold must be within 1-99, got %d", o.shrink)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cmd *cobra.Command, fs afero.Fs, out io.Writer, opts options, paths []string) error {
	ctx := cmd.Context()

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}
	defer func() { _ = logger.Sync() }()

	tbl, err := ohash.New(opts.capacity,
		ohash.WithLogger(logger.Named("table")),
		ohash.WithGrowthThreshold(opts.growth),
		ohash.WithShrinkThreshold(opts.shrink))
	if err != nil {
		return err
	}
	defer tbl.Destroy()

	ranges, err := wordcount.Split(fs, paths, opts.workers)
	if err != nil {
		return err
	}
	cfg := wordcount.Config{FS: fs, Logger: logger.Named("wordcount")}

	results, err := wordcount.Run(ctx, cfg, ranges, tbl, wordcount.PhaseCount)
	if err != nil {
		return errors.Wrap(err, "count phase failed")
	}
	printTasks(out, results)
	printStats(out, "after insertion", wordcount.Size(ranges), tbl.Stats())
	printTop(out, wordcount.Top(tbl, opts.top))

	if opts.verify {
		if err := verify(ctx, cfg, paths, tbl); err != nil {
			return err
		}
		printf(out, "verify: sequential recount matches\n")
	}

	if opts.remove {
		results, err := wordcount.Run(ctx, cfg, ranges, tbl, wordcount.PhaseRemove)
		if err != nil {
			return errors.Wrap(err, "remove phase failed")
		}
		printTasks(out, results)
		printStats(out, "after deletion", wordcount.Size(ranges), tbl.Stats())
	}
	return nil
}

// verify recounts the files with one task per file into a fresh table and
// checks that it holds exactly the same entries as tbl.
func verify(ctx context.Context, cfg wordcount.Config, paths []string, tbl *ohash.Table) error {
	ref, err := ohash.New(tbl.Capacity())
	if err != nil {
		return err
	}
	defer ref.Destroy()

	ranges, err := wordcount.Split(cfg.FS, paths, 1)
	if err != nil {
		return err
	}
	if _, err := wordcount.Run(ctx, cfg, ranges, ref, wordcount.PhaseCount); err != nil {
		return errors.Wrap(err, "sequential recount failed")
	}

	got, want := wordcount.Fingerprint(tbl), wordcount.Fingerprint(ref)
	if got != want || tbl.Count() != ref.Count() {
		return errors.Newf("parallel count (%d entries, fingerprint %x) differs from sequential count (%d entries, fingerprint %x)",
			tbl.Count(), got, ref.Count(), want)
	}
	return nil
}
