package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"threadtriage/internal/config"
	"threadtriage/internal/triage"
)

// Version is the build version, stamped via -ldflags at release time.
var Version = "dev"

var (
	cfgFile string
	homeDir string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "threadtriage",
	Short: "Email thread review tool",
	Long: `threadtriage is a terminal tool for reviewing summarized email threads:
keep what matters, discard the rest, and export the kept subset.

Threads are read from a JSON document, review decisions persist across
sessions, and a static ignore list plus per-session sender ignores keep
noise out of the review queue.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile, homeDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if err := cfg.EnsureHomeDir(); err != nil {
			return fmt.Errorf("create data directory %s: %w", cfg.Data.DataDir, err)
		}

		return nil
	},
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadStaticIgnores reads the static ignore list. An unparseable list is
// reduced to a warning so a typo in one file never blocks a review.
func loadStaticIgnores() *triage.StaticIgnoreList {
	static, err := triage.LoadStaticIgnoreList(cfg.IgnorePath())
	if err != nil {
		logger.Warn("ignore list unusable, continuing without it",
			"path", cfg.IgnorePath(), "error", err)
	}
	return static
}

// openStorage creates the persistent state store under the data directory.
func openStorage() (triage.Storage, error) {
	store, err := triage.NewFileStore(cfg.StateDir())
	if err != nil {
		return nil, fmt.Errorf("open state directory %s: %w", cfg.StateDir(), err)
	}
	return store, nil
}

// openSession loads the thread document, ignore list, and persisted state
// into a ready session. Commands that can render a load failure in place
// (the TUI) assemble their session by hand instead.
func openSession() (*triage.Session, error) {
	threads, err := triage.LoadThreads(cfg.ThreadsPath())
	if err != nil {
		return nil, err
	}
	store, err := openStorage()
	if err != nil {
		return nil, err
	}
	return triage.NewSession(threads, loadStaticIgnores(), store, cfg.View.PageSize), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.threadtriage/config.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "data directory (default: ~/.threadtriage or $THREADTRIAGE_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("threadtriage %s\n", Version)
		},
	})
}
