package engine

import "iter"

// Slide returns where an object at from comes to rest when pushed in
// direction d. It advances over every non-wall cell (ice, end, or an unset
// cell) and stops in front of the first wall or at the board edge. The
// second result is false when the object cannot leave from.
func (b Board) Slide(from Position, d Direction) (Position, bool) {
	p := from
	for {
		next, ok := p.Step(d)
		if !ok || b.Get(next).IsObstacle() {
			break
		}
		p = next
	}
	return p, p != from
}

// apply moves the marker from one cell to another on a copy of b. The
// vacated cell always becomes ice, goal included; the cached end keeps
// the goal position after the marker slides off it.
func (b Board) apply(from, to Position) Board {
	next := b
	next.cells[from.y][from.x] = Ice
	next.cells[to.y][to.x] = Start
	return next
}

// Transitions yields every legal slide of the marker. Positions are visited
// in row-major order and directions in the order North, South, West, East;
// slides that leave the marker where it is are skipped.
func (b Board) Transitions() iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for p := range Positions() {
			obj := b.Get(p)
			if !obj.IsStart() {
				continue
			}
			for d := range Directions() {
				to, moved := b.Slide(p, d)
				if !moved {
					continue
				}
				t := Transition{
					Move:  Move{Object: obj, Direction: d},
					Board: b.apply(p, to),
					From:  p,
					To:    to,
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Successors yields each legal move with the board it produces.
func (b Board) Successors() iter.Seq2[Move, Board] {
	return func(yield func(Move, Board) bool) {
		for t := range b.Transitions() {
			if !yield(t.Move, t.Board) {
				return
			}
		}
	}
}

// Next collects every legal transition of b.
func (b Board) Next() []Transition {
	var next []Transition
	for t := range b.Transitions() {
		next = append(next, t)
	}
	return next
}

// IsGoal reports whether the marker rests on the goal cell.
func (b Board) IsGoal() bool {
	return b.Get(b.end).IsStart()
}
