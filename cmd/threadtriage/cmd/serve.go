package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"threadtriage/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review state over HTTP",
	Long: `Run a read-only HTTP API over the thread document and the current
review state.

Endpoints:
  GET /health              liveness check
  GET /api/v1/threads      filtered, paginated thread list
  GET /api/v1/stats        triage counters
  GET /api/v1/export       kept threads as an export document

Set [server] static_dir in config.toml to also host a dashboard page.
Use Ctrl+C to stop the server gracefully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}

		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if serveStaticDir != "" {
			cfg.Server.StaticDir = serveStaticDir
		}

		server := api.NewServer(cfg, session, logger)

		serverErr := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		fmt.Printf("threadtriage server started on %s\n", cfg.Server.Addr)

		select {
		case err := <-serverErr:
			return fmt.Errorf("api server: %w", err)
		case <-cmd.Context().Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

var (
	serveAddr      string
	serveStaticDir string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveStaticDir, "static", "", "static dashboard directory (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
