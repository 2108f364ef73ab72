package solver

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// Sentinel errors for solver execution.
var (
	// ErrNoSolution is returned when no goal state is reachable.
	ErrNoSolution = errors.New("solver: no solution")

	// ErrStateLimit is returned when the search visits more states than allowed.
	ErrStateLimit = errors.New("solver: state limit exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("solver: invalid option supplied")
)

// State is the contract a puzzle state must satisfy to be searched.
type State[M any, S any] interface {
	comparable
	IsGoal() bool
	Successors() iter.Seq2[M, S]
}

// Step is one move of a solution and the state it leads to.
type Step[M any, S any] struct {
	Move  M
	State S
}

// Solution is a shortest path from the start state to a goal.
type Solution[M any, S any] struct {
	Moves    []M
	Steps    []Step[M, S]
	Final    S
	Explored int
}

// Exploration summarizes the reachable state graph.
type Exploration struct {
	// States is the number of distinct reachable states, the start included.
	States int
	// MaxDepth is the largest shortest-path distance from the start.
	MaxDepth int
	// Goals is the number of reachable goal states.
	Goals int
	// DeadEnds counts non-goal states without successors.
	DeadEnds int
	// GoalDepth is the distance to the nearest goal, or -1.
	GoalDepth int
	// Transitions is the number of edges examined.
	Transitions int
}

// Option configures a search via functional arguments.
type Option func(*Options)

// Options holds parameters and hooks to customize a search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth, if > 0, stops expanding states at this distance from the start.
	MaxDepth int

	// MaxStates, if > 0, aborts with ErrStateLimit once more states are discovered.
	MaxStates int

	// OnVisit is called for every state taken off the queue with its depth.
	OnVisit func(depth int)

	err error
}

// DefaultOptions returns Options with no limits, a background context and
// a no-op hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(int) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth limits the search depth. Negative values are a violation.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		if depth < 0 {
			o.err = fmt.Errorf("%w: max depth %d", ErrOptionViolation, depth)
			return
		}
		o.MaxDepth = depth
	}
}

// WithMaxStates limits the number of discovered states. Negative values are a violation.
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: max states %d", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithOnVisit registers a hook called for each visited state.
func WithOnVisit(fn func(depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
