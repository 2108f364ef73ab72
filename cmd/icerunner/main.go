// Command icerunner solves Ice Runner boards and serves the game.
//
// Without a subcommand it reads a board file, prints it, and prints a
// shortest solution. Subcommands:
//
//	serve     HTTP server with REST API, WebSocket, and an /mcp endpoint
//	mcp       MCP stdio server, backed by an external or internal HTTP API
//	validate  parse and solvability report for every board in a directory
//	analyze   state-space statistics for every board in a directory
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/icerunner/game/engine"
	"github.com/wricardo/mcp-training/icerunner/game/solver"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Ice Runner"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree.
func newApp() *cli.Command {
	return &cli.Command{
		Name:      "icerunner",
		Usage:     "solve and serve 5x5 sliding ice puzzles",
		ArgsUsage: "<board-file>",
		Version:   Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Before: setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				fmt.Fprintln(cmd.Root().Writer, "Invalid arguments")
				return cli.Exit("", 1)
			}
			return solveFile(ctx, cmd.Root().Writer, cmd.Args().First())
		},
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			validateCommand(),
			analyzeCommand(),
		},
	}
}

// setup loads .env and configures logging before any command runs.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warn("Error loading .env file")
		}
	} else {
		log.Debug("Loaded environment variables from .env file")
	}

	if cmd.Bool("debug") {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	}
	return ctx, nil
}

// solveFile echoes a board file, parses it and prints a shortest solution.
func solveFile(ctx context.Context, w io.Writer, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to read %s [%v]", path, err), 1)
	}
	fmt.Fprintln(w, string(src))

	board, err := engine.Parse(string(src))
	if err != nil {
		log.WithError(err).Debug("parse failed")
		fmt.Fprintln(w, "Failed to parse IceRunner")
		return cli.Exit("", 1)
	}
	fmt.Fprintln(w, "Parse done")
	fmt.Fprintln(w, board)

	sol, err := solver.Solve[engine.Move](board, solver.WithContext(ctx))
	switch {
	case errors.Is(err, solver.ErrNoSolution):
		fmt.Fprintln(w, "no solution")
		return nil
	case err != nil:
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintln(w, "solution:")
	fmt.Fprintln(w, engine.FormatMoves(sol.Moves))
	return nil
}
