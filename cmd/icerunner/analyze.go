package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/icerunner/game/boards"
	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/solver"
)

// BoardAnalysis summarizes the state graph reachable from a board.
type BoardAnalysis struct {
	Name        string
	Walls       int
	Ice         int
	Exploration *solver.Exploration
}

// analyzeBoard parses a board and explores every state reachable from it.
func analyzeBoard(ctx context.Context, path string) (*BoardAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	board, err := engine.Parse(string(data))
	if err != nil {
		return nil, err
	}

	ex, err := solver.Explore[engine.Move](board, solver.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return &BoardAnalysis{
		Name:        filepath.Base(path),
		Walls:       board.Count(engine.Wall),
		Ice:         board.Count(engine.Ice),
		Exploration: ex,
	}, nil
}

func printAnalysis(w io.Writer, a *BoardAnalysis) {
	ex := a.Exploration
	fmt.Fprintf(w, "Walls: %d | Ice: %d\n", a.Walls, a.Ice)
	fmt.Fprintf(w, "Reachable states: %d (%d transitions)\n", ex.States, ex.Transitions)
	fmt.Fprintf(w, "Max depth: %d\n", ex.MaxDepth)
	if ex.GoalDepth >= 0 {
		fmt.Fprintf(w, "✅ Goal reachable in %d moves\n", ex.GoalDepth)
	} else {
		fmt.Fprintln(w, "⚠️  Goal unreachable")
	}
	if ex.DeadEnds > 0 {
		fmt.Fprintf(w, "⚠️  %d dead-end states (no legal slide)\n", ex.DeadEnds)
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Print state-space statistics for every board in a directory",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = "boards"
			}
			w := cmd.Root().Writer

			files, err := filepath.Glob(filepath.Join(dir, "*"+boards.Extension))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			for _, file := range files {
				fmt.Fprintf(w, "\n=== Analyzing %s ===\n", filepath.Base(file))
				a, err := analyzeBoard(ctx, file)
				if err != nil {
					fmt.Fprintf(w, "Error: %v\n", err)
					continue
				}
				printAnalysis(w, a)
			}
			return nil
		},
	}
}
