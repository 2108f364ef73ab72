package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/icerunner/api"
	"github.com/wricardo/mcp-training/icerunner/game/boards"
	"github.com/wricardo/mcp-training/icerunner/game/service"
	"github.com/wricardo/mcp-training/icerunner/game/session"
	"github.com/wricardo/mcp-training/icerunner/transport/mcp"
	"github.com/wricardo/mcp-training/icerunner/transport/websocket"
)

const (
	cleanupInterval  = time.Hour
	sessionRetention = 24 * time.Hour
	syncInterval     = 5 * time.Second
)

// storageFlags are shared by every command that builds the game service.
func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "boards-dir",
			Value:   "boards",
			Usage:   "Directory containing board files",
			Sources: cli.EnvVars("BOARDS_DIR"),
		},
		&cli.StringFlag{
			Name:    "sessions-dir",
			Value:   "sessions",
			Usage:   "Directory for persisted sessions (ignored with --redis-url)",
			Sources: cli.EnvVars("SESSIONS_DIR"),
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "Persist sessions in Redis instead of files",
			Sources: cli.EnvVars("REDIS_URL"),
		},
	}
}

func serveCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "HTTP server host",
			Sources: cli.EnvVars("HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "HTTP server port",
			Sources: cli.EnvVars("PORT"),
		},
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "Enable ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "Ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "Custom ngrok domain (optional)",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}

	return &cli.Command{
		Name:  "serve",
		Usage: "Run HTTP server with API, WebSocket, and MCP endpoint",
		Flags: append(flags, storageFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := initializeServices(ctx, storageConfigFrom(cmd))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Failed to initialize services: %v", err), 1)
			}
			defer svc.Close()

			return runHTTPServer(ctx, svc.Game, serveConfig{
				Addr:        fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port")),
				Ngrok:       cmd.Bool("ngrok"),
				NgrokAuth:   cmd.String("ngrok-auth"),
				NgrokDomain: cmd.String("ngrok-domain"),
			})
		},
	}
}

type storageConfig struct {
	BoardsDir   string
	SessionsDir string
	RedisURL    string
}

func storageConfigFrom(cmd *cli.Command) storageConfig {
	return storageConfig{
		BoardsDir:   cmd.String("boards-dir"),
		SessionsDir: cmd.String("sessions-dir"),
		RedisURL:    cmd.String("redis-url"),
	}
}

type serveConfig struct {
	Addr        string
	Ngrok       bool
	NgrokAuth   string
	NgrokDomain string
}

// services holds the wired game service and the resources behind it.
type services struct {
	Game        service.GameService
	Sessions    *session.Manager
	Persistence session.SessionPersistence
	closers     []func() error
}

// Close flushes sessions and releases storage connections, last opened first.
func (s *services) Close() {
	for _, c := range slices.Backward(s.closers) {
		if err := c(); err != nil {
			log.WithError(err).Warn("close failed")
		}
	}
}

// initializeServices wires the board library, session manager and game service.
// It also starts background routines that prune stale sessions until ctx is done.
func initializeServices(ctx context.Context, cfg storageConfig) (*services, error) {
	library, err := boards.NewManager(cfg.BoardsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create board library: %w", err)
	}

	svc := &services{}
	var fileStore *session.FilePersistence
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisPersistence(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		svc.Persistence = redisStore
		svc.closers = append(svc.closers, redisStore.Close)
		log.Info("Persisting sessions in Redis")
	} else {
		fileStore, err = session.NewFilePersistence(cfg.SessionsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create session persistence: %w", err)
		}
		svc.Persistence = fileStore
		log.WithField("dir", cfg.SessionsDir).Info("Persisting sessions to files")
	}

	svc.Sessions = session.NewManagerWithPersistence(svc.Persistence)
	if err := svc.Sessions.LoadPersistedSessions(); err != nil {
		log.WithError(err).Warn("Failed to load persisted sessions")
	}
	svc.closers = append(svc.closers, svc.Sessions.SaveAllSessions)

	svc.Game = service.NewGameService(svc.Sessions, library)

	// Start session cleanup routine
	go svc.Sessions.RunCleanup(ctx, cleanupInterval, sessionRetention)

	if fileStore != nil {
		go filesystemSyncRoutine(ctx, syncInterval, svc.Sessions, fileStore)
	}

	return svc, nil
}

// syncWithPersistence removes sessions from memory whose stored copy is gone.
func syncWithPersistence(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, sess := range manager.List() {
		if persistence.Exists(sess.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			log.WithField("session", sess.ID).Info("Pruned session from memory (file deleted)")
		}
	}
	return pruned
}

// filesystemSyncRoutine periodically syncs in-memory sessions with the filesystem.
func filesystemSyncRoutine(ctx context.Context, interval time.Duration, manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := syncWithPersistence(manager, persistence); pruned > 0 {
				log.Infof("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
			}
		}
	}
}

// newHandler combines the REST API, WebSocket endpoint and the /mcp endpoint.
// The MCP tools call back into the API at baseURL.
func newHandler(gameService service.GameService, hub *websocket.Hub, baseURL string) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", api.NewServer(gameService, hub))
	mainRouter.Handle("/mcp", mcp.NewClient(baseURL).HTTPHandler())
	return mainRouter
}

// runHTTPServer serves until ctx is cancelled, then shuts down gracefully.
// If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, gameService service.GameService, cfg serveConfig) error {
	hub := websocket.NewHub()
	go hub.Run(ctx)

	handler := newHandler(gameService, hub, "http://"+cfg.Addr)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Infof("HTTP server listening on %s", cfg.Addr)
		log.Infof("REST API: http://%s/api", cfg.Addr)
		log.Infof("WebSocket: ws://%s/ws?session=<session_id>", cfg.Addr)
		log.Infof("MCP endpoint: http://%s/mcp", cfg.Addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if cfg.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, cfg, handler)
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
	case serveErr = <-errCh:
		log.WithError(serveErr).Error("HTTP server failed")
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info("Server stopped")

	if serveErr != nil {
		return cli.Exit(fmt.Sprintf("HTTP server failed: %v", serveErr), 1)
	}
	return nil
}

// runNgrok serves handler through an ngrok tunnel until ctx is done.
func runNgrok(ctx context.Context, cfg serveConfig, handler http.Handler) {
	if cfg.NgrokAuth == "" {
		log.Warn("Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Info("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if cfg.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.NgrokDomain))
		log.WithField("domain", cfg.NgrokDomain).Info("Using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(cfg.NgrokAuth))
	if err != nil {
		log.WithError(err).Error("Failed to start ngrok tunnel")
		return
	}

	// Closing the tunnel unblocks http.Serve.
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.WithError(err).Warn("Failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.Infof("Ngrok tunnel established: %s", ngrokURL)
	log.Infof("  REST API (ngrok): %s/api", ngrokURL)
	log.Infof("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Infof("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.WithError(err).Warn("Ngrok server error")
	}
	log.Info("Ngrok tunnel closed")
}
