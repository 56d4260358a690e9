package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Job is one independent problem document.
type Job struct {
	ID   string
	Data []byte
}

// Outcome of one job. Exactly one of Solution and Err is set.
type Outcome struct {
	Index    int
	JobID    string
	Worker   int
	Solution *Solution
	Err      error

	run uint64
}

type batchItem struct {
	run   uint64
	index int
	job   Job
}

// SolverService solves each job it receives and reports the outcome. A
// failing job, including a panic, only affects its own outcome.
type SolverService struct {
	id     int
	solver *Solver
	logger zerolog.Logger
}

func NewSolverService(id int, opts Options, logLevel zerolog.Level) *SolverService {
	logger := log.With().
		Str("layer", "BATCH").
		Int("worker", id).
		Logger().
		Level(logLevel)

	return &SolverService{
		id:     id,
		solver: NewSolver(opts, logLevel),
		logger: logger,
	}
}

func (s *SolverService) OnMessage(item batchItem, ctx ServiceContext[Outcome]) {
	out := Outcome{Index: item.index, JobID: item.job.ID, Worker: s.id, run: item.run}
	defer func() {
		if r := recover(); r != nil {
			out.Solution = nil
			out.Err = fmt.Errorf("job %s: panic: %v", item.job.ID, r)
			s.logger.Error().Str("job", item.job.ID).Interface("panic", r).Msg("Solve panicked")
		}
		ctx.SendResult(out)
	}()

	sol, err := s.solver.Solve(item.job.Data)
	if err != nil {
		s.logger.Warn().Str("job", item.job.ID).Err(err).Msg("Job failed")
		out.Err = err
		return
	}
	s.logger.Debug().Str("job", item.job.ID).Str("secret", sol.Secret.String()).Msg("Job solved")
	out.Solution = sol
}

// Batch solves many jobs on a fixed set of workers.
type Batch struct {
	network  *Network[batchItem]
	managers []*ServiceManager[batchItem, Outcome]
	results  chan Outcome
	stop     chan struct{}
	logger   zerolog.Logger

	mu  sync.Mutex
	run uint64
}

func NewBatch(workers int, opts Options, logLevel zerolog.Level) *Batch {
	if workers < 1 {
		workers = 1
	}
	logger := log.With().
		Str("layer", "BATCH").
		Logger().
		Level(logLevel)

	b := &Batch{
		network:  NewNetwork[batchItem](),
		managers: make([]*ServiceManager[batchItem, Outcome], workers),
		results:  make(chan Outcome),
		stop:     make(chan struct{}),
		logger:   logger,
	}

	for i := 0; i < workers; i++ {
		id := i + 1
		svc := NewSolverService(id, opts, logLevel)
		mgr := NewServiceManager[batchItem, Outcome](svc, 64)
		b.managers[i] = mgr
		b.network.Register(id, mgr.Inbox())
		mgr.Start()

		go b.forward(mgr)
	}
	return b
}

func (b *Batch) forward(mgr *ServiceManager[batchItem, Outcome]) {
	for {
		select {
		case out := <-mgr.Result():
			select {
			case b.results <- out:
			case <-b.stop:
				return
			}
		case <-b.stop:
			return
		}
	}
}

// Run solves jobs and returns their outcomes in job order. Runs are serialized.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.run++
	run := b.run
	b.logger.Info().Int("jobs", len(jobs)).Int("workers", len(b.managers)).Msg("Starting batch")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for i, job := range jobs {
			if _, err := b.network.Dispatch(ctx, batchItem{run: run, index: i, job: job}); err != nil {
				return
			}
		}
	}()

	outcomes := make([]Outcome, len(jobs))
	failed := 0
	for received := 0; received < len(jobs); {
		select {
		case out := <-b.results:
			if out.run != run {
				continue
			}
			outcomes[out.Index] = out
			if out.Err != nil {
				failed++
			}
			received++
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-b.stop:
			return nil, fmt.Errorf("batch closed")
		}
	}

	b.logger.Info().Int("jobs", len(jobs)).Int("failed", failed).Msg("Batch finished")
	return outcomes, nil
}

// Close stops every worker. A closed Batch cannot be reused.
func (b *Batch) Close() {
	select {
	case <-b.stop:
		return
	default:
		close(b.stop)
	}
	for _, mgr := range b.managers {
		mgr.Stop()
	}
}
