package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/icerunner/api"
	"github.com/wricardo/mcp-training/icerunner/transport/mcp"
	"github.com/wricardo/mcp-training/icerunner/transport/websocket"
)

func mcpCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Value:   "http://localhost:8080",
			Usage:   "REST API to use when it is reachable",
			Sources: cli.EnvVars("ICERUNNER_API_URL"),
		},
	}

	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "Run MCP stdio server, with an internal HTTP API if none is available",
		Flags:   append(flags, storageFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			baseURL, shutdown, err := resolveAPI(ctx, cmd.String("api-url"), storageConfigFrom(cmd))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer shutdown()

			log.WithField("api", baseURL).Info("MCP stdio server ready")
			if err := server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer()); err != nil {
				return cli.Exit(fmt.Sprintf("MCP stdio server error: %v", err), 1)
			}
			return nil
		},
	}
}

// apiAvailable reports whether a REST API answers at baseURL.
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// resolveAPI returns the external API when it answers. Otherwise it starts an
// internal API on a random loopback port and returns its URL with a shutdown func.
func resolveAPI(ctx context.Context, externalURL string, cfg storageConfig) (string, func(), error) {
	log.WithField("url", externalURL).Info("Checking for external API server")
	if externalURL != "" && apiAvailable(ctx, externalURL) {
		log.WithField("url", externalURL).Info("External API server found, using it for MCP")
		return externalURL, func() {}, nil
	}

	log.Info("No external API server found, starting internal HTTP server")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get available port: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	svc, err := initializeServices(ctx, cfg)
	if err != nil {
		cancel()
		listener.Close()
		return "", nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	httpServer := &http.Server{
		Handler: api.NewServer(svc.Game, hub),
	}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Internal HTTP server error")
		}
	}()

	baseURL := "http://" + listener.Addr().String()
	log.WithField("url", baseURL).Info("Internal HTTP server started for MCP stdio")

	shutdown := func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Internal HTTP server shutdown error")
		}
		cancel()
		svc.Close()
	}
	return baseURL, shutdown, nil
}
