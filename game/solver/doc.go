// Package solver searches the state graph of a puzzle breadth-first.
//
// A puzzle state only has to be comparable and expose two methods: IsGoal
// and Successors, the latter yielding (move, next state) pairs. Solve
// returns a shortest move sequence to a goal state; Explore walks the whole
// reachable graph and reports its shape.
//
// Usage:
//
//	sol, err := solver.Solve[engine.Move](board, solver.WithContext(ctx))
//	if errors.Is(err, solver.ErrNoSolution) {
//		fmt.Println("no solution")
//	}
//
// States are deduplicated by equality, so value types such as engine.Board
// work directly. Options follow the functional style: invalid values are
// recorded and surfaced as ErrOptionViolation when the search starts.
package solver
