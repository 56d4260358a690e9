package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"threshold-secret-solver/services"

	"github.com/rs/zerolog"
)

// Runner solves the jobs of one invocation and prints their outcomes.
type Runner struct {
	Batch *services.Batch
	out   io.Writer
	trace bool
}

// NewRunner creates a Runner backed by a batch of cfg.Workers solvers.
func NewRunner(cfg Config, out io.Writer, logLevel zerolog.Level) *Runner {
	return &Runner{
		Batch: services.NewBatch(cfg.Workers, cfg.Options, logLevel),
		out:   out,
		trace: cfg.Trace,
	}
}

// Run solves jobs and returns how many of them failed.
func (r *Runner) Run(ctx context.Context, jobs []services.Job) (int, error) {
	outcomes, err := r.Batch.Run(ctx, jobs)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
		if r.trace && o.Solution != nil {
			fmt.Fprintf(r.out, "== %s ==\n%s", o.JobID, o.Solution.Trace.Render())
		}
		fmt.Fprintln(r.out, formatOutcome(o))
	}
	return failed, nil
}

// Close stops the workers.
func (r *Runner) Close() {
	r.Batch.Close()
}

func formatOutcome(o services.Outcome) string {
	if o.Err != nil {
		return fmt.Sprintf("%s: ERROR: %v", o.JobID, o.Err)
	}
	line := fmt.Sprintf("%s: %s", o.JobID, o.Solution.Secret)
	if w := o.Solution.Warning; w != nil {
		line += fmt.Sprintf(" (non-integer: %s/%s)", w.Numerator, w.Denominator)
	}
	return line
}

// loadJobs builds the job list: the samples for -demo, one job per file, or
// a single document from stdin.
func loadJobs(cfg Config, stdin io.Reader) ([]services.Job, error) {
	if cfg.Demo {
		return demoJobs, nil
	}

	if len(cfg.Files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []services.Job{{ID: "stdin", Data: data}}, nil
	}

	jobs := make([]services.Job, 0, len(cfg.Files))
	for _, path := range cfg.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		jobs = append(jobs, services.Job{ID: path, Data: data})
	}
	return jobs, nil
}
