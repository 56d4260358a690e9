package services

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/rs/zerolog"
)

type EventKind int

const (
	EventParameters EventKind = iota
	EventDecoded
	EventSelected
	EventTerm
	EventResult
	EventWarning
)

func (k EventKind) String() string {
	switch k {
	case EventParameters:
		return "PARAMETERS"
	case EventDecoded:
		return "DECODED"
	case EventSelected:
		return "SELECTED"
	case EventTerm:
		return "TERM"
	case EventResult:
		return "RESULT"
	case EventWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Factor is one (0 - Xj)/(Xi - Xj) factor of a Lagrange basis value.
type Factor struct {
	Xi *big.Int
	Xj *big.Int
}

// Event is one step of a solve. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	// EventParameters
	N int
	K int

	// EventDecoded, EventTerm
	Point Point
	Base  int
	Value string

	// EventSelected
	Points    []Point
	Available int

	// EventTerm
	Index   int
	Factors []Factor

	// EventTerm (term fraction), EventResult and EventWarning (final fraction)
	Num *big.Int
	Den *big.Int

	// EventResult, EventWarning
	Secret *big.Int
}

// Observer receives solve events as they happen.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

type multiObserver []Observer

func (m multiObserver) Observe(ev Event) {
	for _, o := range m {
		o.Observe(ev)
	}
}

// Observers fans events out to every non-nil observer.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

// Trace records every event of one solve.
type Trace struct {
	Events []Event
}

func (t *Trace) Observe(ev Event) {
	t.Events = append(t.Events, ev)
}

// Filter returns the events of the given kind in order.
func (t *Trace) Filter(kind EventKind) []Event {
	var out []Event
	for _, ev := range t.Events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// Render formats the trace as a readable step listing.
func (t *Trace) Render() string {
	var b strings.Builder
	for _, ev := range t.Events {
		switch ev.Kind {
		case EventParameters:
			fmt.Fprintf(&b, "Parameters: n=%d k=%d degree=%d\n", ev.N, ev.K, ev.K-1)
		case EventDecoded:
			fmt.Fprintf(&b, "  x=%s: base%d(%q) = %s\n", ev.Point.X, ev.Base, ev.Value, ev.Point.Y)
		case EventSelected:
			if ev.Available > len(ev.Points) {
				fmt.Fprintf(&b, "Using first %d points out of %d available\n", len(ev.Points), ev.Available)
			}
			fmt.Fprintln(&b, "Points:")
			for _, p := range ev.Points {
				fmt.Fprintf(&b, "  %s\n", p)
			}
		case EventTerm:
			factors := make([]string, len(ev.Factors))
			for i, f := range ev.Factors {
				factors[i] = fmt.Sprintf("(-%s)/(%s-%s)", f.Xj, f.Xi, f.Xj)
			}
			if len(factors) == 0 {
				factors = []string{"1"}
			}
			fmt.Fprintf(&b, "L%d(0) = %s\n", ev.Index+1, strings.Join(factors, " * "))
			fmt.Fprintf(&b, "Term %d: %s * L%d(0) = %s/%s\n", ev.Index+1, ev.Point.Y, ev.Index+1, ev.Num, ev.Den)
		case EventWarning:
			fmt.Fprintf(&b, "Warning: result is not an integer: %s/%s, truncated to %s\n", ev.Num, ev.Den, ev.Secret)
		case EventResult:
			fmt.Fprintf(&b, "Secret: %s\n", ev.Secret)
		}
	}
	return b.String()
}

// LogObserver mirrors events to a zerolog logger at debug level, warnings at
// warn level.
type LogObserver struct {
	logger zerolog.Logger
}

func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (l *LogObserver) Observe(ev Event) {
	switch ev.Kind {
	case EventParameters:
		l.logger.Debug().Int("n", ev.N).Int("k", ev.K).Int("degree", ev.K-1).Msg("Problem parameters")
	case EventDecoded:
		l.logger.Debug().Str("x", ev.Point.X.String()).Int("base", ev.Base).Str("value", ev.Value).Str("y", ev.Point.Y.String()).Msg("Decoded share")
	case EventSelected:
		l.logger.Debug().Int("selected", len(ev.Points)).Int("available", ev.Available).Msgf("Selected points %v", ev.Points)
	case EventTerm:
		l.logger.Debug().Int("term", ev.Index+1).Str("num", ev.Num.String()).Str("den", ev.Den.String()).Msg("Lagrange term")
	case EventWarning:
		l.logger.Warn().Str("num", ev.Num.String()).Str("den", ev.Den.String()).Str("truncated", ev.Secret.String()).Msg("Result is not an integer")
	case EventResult:
		l.logger.Debug().Str("secret", ev.Secret.String()).Msg("Interpolation finished")
	}
}
