package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/proclog/console"
	"go.jacobcolvin.com/proclog/level"
	"go.jacobcolvin.com/proclog/process"
	"go.jacobcolvin.com/proclog/profile"
)

// ErrInvalidBench indicates unusable bench parameters.
var ErrInvalidBench = errors.New("invalid bench parameters")

// benchOptions sizes a bench run.
type benchOptions struct {
	Processes int
	Children  int
	Entries   int
}

// benchResult summarizes a bench run.
type benchResult struct {
	Elapsed   time.Duration
	Processes int
	Entries   int
}

func (r benchResult) String() string {
	rate := 0.0
	if r.Elapsed > 0 {
		rate = float64(r.Entries) / r.Elapsed.Seconds()
	}

	return fmt.Sprintf("logged %d entries from %d processes in %s (%.0f entries/s)",
		r.Entries, r.Processes, r.Elapsed.Round(time.Microsecond), rate)
}

func (a *app) benchCommand() *cobra.Command {
	opts := benchOptions{Processes: 4, Children: 2, Entries: 1000}
	prof := profile.NewConfig()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure logging throughput under concurrent load",
		Long: `bench registers a set of main processes with sub-processes and logs from one
goroutine per process to a discarding sink. Profiling flags capture CPU,
heap, mutex, and blocking profiles of the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.newLogger(io.Discard)
			if err != nil {
				return err
			}

			session, err := prof.Start()
			if err != nil {
				return err
			}

			res, err := runBench(l, opts)

			err = errors.Join(err, session.Stop())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), res)
			if err != nil {
				return fmt.Errorf("writing result: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Processes, "processes", opts.Processes, "main processes to register")
	cmd.Flags().IntVar(&opts.Children, "children", opts.Children, "sub-processes per main process")
	cmd.Flags().IntVar(&opts.Entries, "entries", opts.Entries, "entries logged by each process")
	prof.RegisterFlags(cmd.Flags())

	err := prof.RegisterCompletions(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

// runBench registers the processes described by opts with l, then logs
// opts.Entries entries per process concurrently.
func runBench(l *console.Logger, opts benchOptions) (benchResult, error) {
	if opts.Processes < 1 || opts.Children < 0 || opts.Entries < 0 {
		return benchResult{}, fmt.Errorf("%w: need at least one process and no negative counts", ErrInvalidBench)
	}

	ids := make([]process.ID, 0, opts.Processes*(opts.Children+1))

	for i := range opts.Processes {
		root, err := l.RegisterMain("service-" + strconv.Itoa(i))
		if err != nil {
			return benchResult{}, err
		}

		ids = append(ids, root)

		for j := range opts.Children {
			sub, err := l.RegisterSub("worker-"+strconv.Itoa(j), root)
			if err != nil {
				return benchResult{}, err
			}

			ids = append(ids, sub)
		}
	}

	// Only levels that pass the filter, so every entry is formatted.
	levels := level.All()[max(int(l.Level()), int(level.Trace)):]

	var wg sync.WaitGroup

	start := time.Now()

	for _, id := range ids {
		wg.Go(func() {
			for n := range opts.Entries {
				l.Log(id, levels[n%len(levels)], "entry", n, map[string]any{"process": id})
			}
		})
	}

	wg.Wait()

	return benchResult{
		Elapsed:   time.Since(start),
		Processes: len(ids),
		Entries:   len(ids) * opts.Entries,
	}, nil
}
