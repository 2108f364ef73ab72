package solver

// node is a discovered state with the edge that first reached it.
type node[M any, S any] struct {
	state  S
	move   M
	parent int
	depth  int
}

// entry is a state queued by Explore.
type entry[S any] struct {
	state S
	depth int
}

// Solve runs a breadth-first search from start and returns a shortest move
// sequence reaching a goal state. A start state that already is a goal
// yields an empty solution.
func Solve[M any, S State[M, S]](start S, opts ...Option) (*Solution[M, S], error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	nodes := []node[M, S]{{state: start, parent: -1}}
	seen := map[S]struct{}{start: {}}

	for head := 0; head < len(nodes); head++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}

		cur := nodes[head]
		o.OnVisit(cur.depth)
		if cur.state.IsGoal() {
			return buildSolution(nodes, head, len(seen)), nil
		}
		if o.MaxDepth > 0 && cur.depth >= o.MaxDepth {
			continue
		}

		for move, next := range cur.state.Successors() {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			if o.MaxStates > 0 && len(seen) > o.MaxStates {
				return nil, ErrStateLimit
			}
			nodes = append(nodes, node[M, S]{state: next, move: move, parent: head, depth: cur.depth + 1})
		}
	}

	return nil, ErrNoSolution
}

func buildSolution[M any, S State[M, S]](nodes []node[M, S], goal, explored int) *Solution[M, S] {
	depth := nodes[goal].depth
	sol := &Solution[M, S]{
		Moves:    make([]M, depth),
		Steps:    make([]Step[M, S], depth),
		Final:    nodes[goal].state,
		Explored: explored,
	}
	for i := goal; nodes[i].parent >= 0; i = nodes[i].parent {
		d := nodes[i].depth - 1
		sol.Moves[d] = nodes[i].move
		sol.Steps[d] = Step[M, S]{Move: nodes[i].move, State: nodes[i].state}
	}
	return sol
}

// Explore visits every state reachable from start, breadth-first, and
// reports counts of states, goals and dead ends. Goal states are counted
// but not expanded, as Solve would stop there.
func Explore[M any, S State[M, S]](start S, opts ...Option) (*Exploration, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	queue := []entry[S]{{state: start}}
	seen := map[S]struct{}{start: {}}
	ex := &Exploration{GoalDepth: -1}

	for head := 0; head < len(queue); head++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}

		cur := queue[head]
		o.OnVisit(cur.depth)
		ex.States++
		if cur.depth > ex.MaxDepth {
			ex.MaxDepth = cur.depth
		}
		if cur.state.IsGoal() {
			ex.Goals++
			if ex.GoalDepth < 0 {
				ex.GoalDepth = cur.depth
			}
			continue
		}
		if o.MaxDepth > 0 && cur.depth >= o.MaxDepth {
			continue
		}

		successors := 0
		for _, next := range cur.state.Successors() {
			successors++
			ex.Transitions++
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			if o.MaxStates > 0 && len(seen) > o.MaxStates {
				return nil, ErrStateLimit
			}
			queue = append(queue, entry[S]{state: next, depth: cur.depth + 1})
		}
		if successors == 0 {
			ex.DeadEnds++
		}
	}

	return ex, nil
}
