package services

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Limits bound the size of untrusted input. Zero means unlimited.
type Limits struct {
	MaxShares int
	MaxK      int
	MaxDigits int
}

func (l Limits) check(p *Problem) error {
	if l.MaxShares > 0 && len(p.Shares) > l.MaxShares {
		return &LimitExceededError{What: "share count", Value: len(p.Shares), Limit: l.MaxShares}
	}
	if l.MaxK > 0 && p.K > l.MaxK {
		return &LimitExceededError{What: "threshold k", Value: p.K, Limit: l.MaxK}
	}
	if l.MaxDigits > 0 {
		for _, s := range p.Shares {
			if len(s.Value) > l.MaxDigits {
				return &LimitExceededError{What: fmt.Sprintf("digits of share %s", s.ID), Value: len(s.Value), Limit: l.MaxDigits}
			}
		}
	}
	return nil
}

// Options configure a Solver.
type Options struct {
	Format Format
	// Strict turns a NonIntegerResultWarning into the returned error.
	Strict bool
	Limits Limits
}

// Solution is the outcome of one solve.
type Solution struct {
	N      int
	K      int
	Secret *big.Int
	// Points are the k points that were interpolated, sorted by x.
	Points  []Point
	Warning *NonIntegerResultWarning
	Trace   *Trace
}

// Exact reports whether the secret is an exact integer result.
func (s *Solution) Exact() bool {
	return s.Warning == nil
}

// Solver runs document → decode → select → interpolate. It holds no state
// between solves and is safe for concurrent use.
type Solver struct {
	opts   Options
	logger zerolog.Logger
}

func NewSolver(opts Options, logLevel zerolog.Level) *Solver {
	logger := log.With().
		Str("layer", "SOLVER").
		Logger().
		Level(logLevel)

	return &Solver{
		opts:   opts,
		logger: logger,
	}
}

// Solve parses a document and recovers its secret.
func (s *Solver) Solve(data []byte) (*Solution, error) {
	problem, err := ParseDocument(data, s.opts.Format)
	if err != nil {
		return nil, err
	}
	return s.SolveProblem(problem)
}

// SolveProblem recovers the secret of an already parsed problem.
func (s *Solver) SolveProblem(problem *Problem) (*Solution, error) {
	if err := s.opts.Limits.check(problem); err != nil {
		return nil, err
	}

	trace := &Trace{}
	obs := Observers(trace, NewLogObserver(s.logger))

	obs.Observe(Event{Kind: EventParameters, N: problem.N, K: problem.K})
	if len(problem.Shares) != problem.N {
		s.logger.Debug().Int("n", problem.N).Int("present", len(problem.Shares)).Msg("Share count differs from n")
	}

	points, err := DecodeShares(problem.Shares)
	if err != nil {
		return nil, err
	}
	for i, p := range points {
		obs.Observe(Event{Kind: EventDecoded, Point: p, Base: problem.Shares[i].Base, Value: problem.Shares[i].Value})
	}

	selected, err := SelectPoints(points, problem.K)
	if err != nil {
		return nil, err
	}
	obs.Observe(Event{Kind: EventSelected, Points: selected, Available: len(points)})

	res, err := Interpolate(selected, obs)
	if err != nil {
		return nil, err
	}

	if res.Warning != nil {
		if s.opts.Strict {
			return nil, res.Warning
		}
	} else {
		s.logger.Info().Str("secret", res.Secret.String()).Msg("Secret recovered")
	}

	return &Solution{
		N:       problem.N,
		K:       problem.K,
		Secret:  res.Secret,
		Points:  selected,
		Warning: res.Warning,
		Trace:   trace,
	}, nil
}
