package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ShahwaizZahid/Job-Listing/config"
	"github.com/ShahwaizZahid/Job-Listing/errors"
	"github.com/ShahwaizZahid/Job-Listing/logger"
	"github.com/ShahwaizZahid/Job-Listing/server"
)

// ServeCmd starts the job postings API server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the job postings HTTP API server",
	Long: `Launch the job postings API server.

Serves the /jobs endpoints for listing, creating, fetching, and updating
job postings, plus /health for liveness checks. Shuts down gracefully on
Ctrl+C, finishing in-flight requests first.`,
	RunE: runServe,
}

var (
	servePort     int
	serveDBPath   string
	serveJSONLogs bool
)

func init() {
	ServeCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	ServeCmd.Flags().StringVar(&serveDBPath, "db-path", "", "Custom database path (overrides config)")
	ServeCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit JSON logs instead of console output")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Get verbosity flag - default to 1 (Info) for serve
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if verbosity == 0 {
		verbosity = 1
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	// Re-initialize logging now that flags and config are resolved
	jsonLogs := serveJSONLogs || cfg.Logging.JSON
	if err := logger.InitializeWithLevel(jsonLogs, logger.VerbosityToLevel(verbosity)); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	defer logger.Cleanup()

	// Resolve port and database path - flags win over config
	port := cfg.GetServerPort()
	if servePort != 0 {
		port = servePort
	}
	dbPath := serveDBPath
	if dbPath == "" {
		dbPath = cfg.GetDatabasePath()
	}

	// Open and migrate database
	database, err := openDatabase(dbPath)
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	printStartupBanner(verbosity, dbPath, port)

	srv := server.New(database, logger.Logger, server.Options{
		Port:               port,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		RateBurst:          cfg.Server.RateBurst,
	})

	// Hot-reload the rate limit when the user config file changes
	if configPath := config.UserConfigPath(); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			watcher, err := config.NewConfigWatcher(configPath)
			if err != nil {
				logger.Warnw("Config watcher unavailable", "error", err)
			} else {
				watcher.OnReload(func(newCfg *config.Config) error {
					srv.SetRateLimit(newCfg.Server.RateLimitPerMinute)
					return nil
				})
				watcher.Start()
				defer watcher.Stop()
			}
		} else {
			logger.Debugw("No user config file, hot reload disabled", "path", configPath)
		}
	}

	// Start server in background
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Wait for shutdown signal (Ctrl+C)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		// Server failed to start or stopped unexpectedly
		return errors.Wrap(err, "server failed to start")
	case <-sigChan:
		// First Ctrl+C - graceful shutdown
		pterm.Info.Println("\nShutting down gracefully (press Ctrl+C again to force)...")

		// Start graceful shutdown in background
		shutdownDone := make(chan error, 1)
		go func() {
			shutdownDone <- srv.Stop()
		}()

		// Wait for either shutdown completion or second Ctrl+C
		select {
		case err := <-shutdownDone:
			if err != nil {
				return errors.Wrap(err, "shutdown error")
			}
			pterm.Success.Println("Server stopped cleanly")
			return nil
		case <-sigChan:
			// Second Ctrl+C - force immediate exit
			pterm.Warning.Println("\nForce shutdown - exiting immediately")
			os.Exit(1)
			return nil // unreachable
		}
	}
}
