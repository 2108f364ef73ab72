// Package engine provides the core rules of the Ice Runner sliding puzzle.
//
// The engine package implements:
//   - The fixed 5x5 board and its cell contents (ice, wall, start, end)
//   - Parsing and rendering of the five-line text format
//   - Move generation: the marker slides until it hits a wall or the edge
//   - The goal test: the marker rests on the end cell
//   - A stateful GameEngine used by interactive sessions
//
// Core Types:
//
// Board is a comparable value holding every cell plus the cached goal
// position. Each move produces a fresh copy, so boards can be used directly
// as map keys by a search. Position addresses a cell by column (x) and row
// (y) and can only be built inside the grid.
//
// Usage:
//
//	board, err := engine.Parse("S....\n*....\n*....\n*....\nE....\n")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for move, next := range board.Successors() {
//		fmt.Println(move, next.IsGoal())
//	}
//
// Text Format:
//
// A board is exactly five lines of five characters, each line terminated by
// a newline. The alphabet is '.' (ice), '*' (wall), 'S' (start) and 'E'
// (end); exactly one start and one end are required.
package engine
