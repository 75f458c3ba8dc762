// Command laddergame runs the ladder dice game.
//
// Commands:
//  1. "serve" (default) – HTTP server exposing the REST API, WebSocket updates and an /mcp endpoint
//  2. "mcp" – MCP stdio server, spinning up an internal HTTP API if none is available
//  3. "play" – one headless game printed turn by turn
//  4. "simulate" – many seeded games on a worker pool with aggregate statistics
//
// Flags control host/port, config directory, logging and optional ngrok
// tunneling for easy external access during development. Every flag can also
// be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/laddergame/api"
	"github.com/wricardo/mcp-training/laddergame/game/config"
	"github.com/wricardo/mcp-training/laddergame/game/engine"
	"github.com/wricardo/mcp-training/laddergame/game/service"
	"github.com/wricardo/mcp-training/laddergame/game/session"
	"github.com/wricardo/mcp-training/laddergame/internal/logging"
	"github.com/wricardo/mcp-training/laddergame/internal/simulate"
	"github.com/wricardo/mcp-training/laddergame/transport/mcp"
	"github.com/wricardo/mcp-training/laddergame/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Ladder Game Server"
)

const (
	sessionMaxAge          = 24 * time.Hour
	sessionCleanupInterval = time.Hour
	defaultPlayMaxTurns    = 2000
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Flags on the root command are inherited by every subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "laddergame",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing board configurations", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging", Sources: cli.EnvVars("DEBUG")},
			&cli.StringFlag{Name: "log-file", Usage: "Also write logs to this rotated file", Sources: cli.EnvVars("LOG_FILE")},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  runStdioMCP,
			},
			{
				Name:  "play",
				Usage: "Play one game in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: "classic", Usage: "Board config ID"},
					&cli.StringSliceFlag{Name: "players", Value: []string{"Player 1", "Player 2"}, Usage: "Player names"},
					&cli.IntFlag{Name: "seed", Usage: "Seed for reproducible dice (0 = random)"},
					&cli.IntFlag{Name: "max-turns", Value: defaultPlayMaxTurns, Usage: "Stop after this many turns"},
				},
				Action: runPlay,
			},
			{
				Name:  "simulate",
				Usage: "Play many games on a worker pool and print statistics",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: "classic", Usage: "Board config ID"},
					&cli.StringSliceFlag{Name: "players", Value: []string{"Player 1", "Player 2"}, Usage: "Player names"},
					&cli.IntFlag{Name: "games", Value: 1000, Usage: "Number of games"},
					&cli.IntFlag{Name: "workers", Usage: "Worker pool size (0 = number of CPUs)"},
					&cli.IntFlag{Name: "seed", Value: 1, Usage: "Seed of the first game"},
					&cli.BoolFlag{Name: "json", Usage: "Print the report as JSON"},
				},
				Action: runSimulate,
			},
		},
	}
}

func newLogger(cmd *cli.Command, quiet bool) *zap.Logger {
	return logging.New(logging.Options{
		Debug: cmd.Bool("debug"),
		File:  cmd.String("log-file"),
		Quiet: quiet,
	})
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd, false)
	defer logger.Sync()

	logger.Info("starting", zap.String("app", AppName), zap.String("version", Version))

	gameService, sessions, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessionCleanupRoutine(ctx, sessions, sessionCleanupInterval, logger)

	hub := websocket.NewHub(logger.Named("ws"))
	go hub.Run()

	apiServer := api.NewServer(gameService, hub, logger.Named("api"))

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), int(cmd.Int("port")))
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	mainRouter := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			zap.String("addr", addr),
			zap.String("api", fmt.Sprintf("http://%s/api", addr)),
			zap.String("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)),
			zap.String("mcp", fmt.Sprintf("http://%s/mcp", addr)))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var wg sync.WaitGroup
	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), mainRouter, logger.Named("ngrok"))
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		stop()
		wg.Wait()
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	wg.Wait()
	logger.Info("server stopped")
	return nil
}

// newRouter mounts the API at the root and the MCP JSON-RPC endpoint at /mcp
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})

	return mainRouter
}

// runNgrok serves handler through an ngrok tunnel until ctx is done
func runNgrok(ctx context.Context, authToken, domain string, handler http.Handler, logger *zap.Logger) {
	if authToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	tunnel := ngrokConfig.HTTPEndpoint()
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		logger.Info("using custom ngrok domain", zap.String("domain", domain))
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.Error("failed to start ngrok tunnel", zap.Error(err))
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.Warn("failed to close ngrok tunnel", zap.Error(err))
		}
	}()

	ngrokURL := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", ngrokURL),
		zap.String("api", ngrokURL+"/api"),
		zap.String("mcp", ngrokURL+"/mcp"))

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.Error("ngrok server error", zap.Error(err))
	}
	logger.Info("ngrok tunnel closed")
}

// initializeServices wires session/config managers and the game service
func initializeServices(configDir string, logger *zap.Logger) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir, logger.Named("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	gameService := service.NewGameService(sessionManager, configManager, logger.Named("service"))
	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically removes tables that have not been touched within sessionMaxAge
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				logger.Info("cleaned up expired sessions", zap.Int("removed", removed), zap.Int("remaining", manager.Count()))
			}
		}
	}
}

// runStdioMCP runs an MCP stdio server.
// It tries to reuse an API already listening on host:port; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the protocol, console logs only when debugging
	logger := newLogger(cmd, !cmd.Bool("debug"))
	defer logger.Sync()

	externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), int(cmd.Int("port")))
	baseURL := externalURL

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		logger.Info("external API server found, using it for MCP", zap.String("url", externalURL))
	} else {
		logger.Info("no external API server found, starting internal HTTP server")

		gameService, _, err := initializeServices(cmd.String("config-dir"), logger)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub(logger.Named("ws"))
		go hub.Run()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub, logger.Named("api"))}
		defer httpServer.Close()

		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("internal HTTP server error", zap.Error(err))
			}
		}()

		baseURL = fmt.Sprintf("http://%s", listener.Addr().String())
		logger.Info("internal HTTP server started", zap.String("url", baseURL))
	}

	mcpClient := mcp.NewClient(baseURL)
	logger.Info("MCP stdio server ready", zap.String("api", baseURL))

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// playOptions configures a terminal game
type playOptions struct {
	ConfigID string
	Players  []string
	Seed     int64
	MaxTurns int
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd, !cmd.Bool("debug"))
	defer logger.Sync()

	gameService, _, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	_, err = playGame(ctx, gameService, playOptions{
		ConfigID: cmd.String("config"),
		Players:  cmd.StringSlice("players"),
		Seed:     int64(cmd.Int("seed")),
		MaxTurns: int(cmd.Int("max-turns")),
	}, os.Stdout)
	return err
}

// playGame plays turns until somebody wins and prints each one to out
func playGame(ctx context.Context, gameService service.GameService, opts playOptions, out io.Writer) (*engine.GameState, error) {
	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
		ConfigID: opts.ConfigID,
		Players:  opts.Players,
		Seed:     opts.Seed,
	})
	if err != nil {
		return nil, err
	}

	state := info.GameState
	fmt.Fprintf(out, "Board %s: %d tiles, ladders %v\n", state.ConfigName, state.TileCount, state.Ladders)
	names := make([]string, len(state.Players))
	for i, p := range state.Players {
		names[i] = p.Name
	}
	fmt.Fprintf(out, "Turn order: %s\n\n", strings.Join(names, ", "))

	if opts.MaxTurns <= 0 {
		opts.MaxTurns = defaultPlayMaxTurns
	}

	for turn := 1; turn <= opts.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		result, err := gameService.PlayTurn(ctx, info.ID)
		if err != nil {
			return state, err
		}
		state = result.GameState

		move := result.Move
		fmt.Fprintf(out, "%4d. %-10s rolled %d %-8s %3d -> %3d", turn, move.Player, move.Die, move.Direction, move.From, move.To)
		if move.LadderTaken {
			fmt.Fprint(out, "  ladder!")
		}
		if result.End.ExtraTurn {
			fmt.Fprint(out, "  extra turn")
		}
		fmt.Fprintln(out)

		if result.End.Won {
			fmt.Fprintf(out, "\n%s wins after %d turns\n", result.End.Winner, turn)
			return state, nil
		}
	}

	fmt.Fprintf(out, "\nNo winner after %d turns\n", opts.MaxTurns)
	return state, nil
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd, !cmd.Bool("debug"))
	defer logger.Sync()

	configManager, err := config.NewManager(cmd.String("config-dir"), logger.Named("config"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	gameConfig, err := configManager.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	report, err := simulate.Run(ctx, simulate.Options{
		Config:  gameConfig,
		Players: cmd.StringSlice("players"),
		Games:   int(cmd.Int("games")),
		Workers: int(cmd.Int("workers")),
		Seed:    int64(cmd.Int("seed")),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	return printReport(os.Stdout, gameConfig.Name, report, cmd.Bool("json"))
}

func printReport(out io.Writer, configName string, report *simulate.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "Board: %s\n", configName)
	fmt.Fprintf(out, "Games: %d (%d finished)\n", report.Games, report.Finished)
	fmt.Fprintf(out, "Turns: min %d, max %d, avg %.1f\n", report.MinTurns, report.MaxTurns, report.AvgTurns)
	fmt.Fprintf(out, "Ladders climbed per game: %.2f\n", report.AvgLadders)
	fmt.Fprintf(out, "Shortest possible route: %d moves\n", report.ShortestRun)
	fmt.Fprintln(out, "Wins:")
	for _, w := range report.Wins {
		fmt.Fprintf(out, "  %-12s %d\n", w.Name, w.Wins)
	}
	return nil
}
