// Package boards provides the board library for Ice Runner.
//
// The boards package handles:
//   - Loading boards from text files
//   - Board validation through the engine codec
//   - Default board selection
//   - Board discovery, listing and saving
//
// Board Format:
//
// Boards are stored as <name>.txt files in the boards directory. Each file
// holds exactly five rows of five symbols followed by a newline:
//
//	S....
//	*....
//	*....
//	*....
//	E....
//
// '.' is ice, '*' is a wall, 'S' is the marker and 'E' is the goal.
//
// Usage:
//
//	manager, err := boards.NewManager("boards")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	board, err := manager.LoadBoard("classic")
//	name, board := manager.GetDefault()
//	infos, err := manager.ListBoards()
package boards
