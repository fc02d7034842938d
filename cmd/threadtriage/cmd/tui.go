package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"threadtriage/internal/triage"
	"threadtriage/internal/tui"
)

var tuiExportPath string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive review UI",
	Long: `Open an interactive terminal UI for reviewing email threads.

Navigation:
  ↑/k, ↓/j    Move up/down
  ←/h, →/l    Previous / next page
  Enter       Open thread detail
  Esc         Go back

Review:
  s, Space    Keep thread (press again to undo)
  d           Discard thread (press again to undo)
  i           Ignore the sender for this session
  I           Review session ignores

Filters:
  1/2/3/4     Status: all / pending / kept / discarded
  c           Cycle category: all / work / personal
  /           Search headlines and content

Other:
  e           Export kept threads
  ?           Help
  q           Quit

Decisions persist immediately; quitting and reopening resumes where you
left off.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}

		// A missing or unreadable thread document renders as an error
		// screen inside the UI instead of failing the command.
		var opts tui.Options
		threads, err := triage.LoadThreads(cfg.ThreadsPath())
		if err != nil {
			opts.LoadErr = err
		}

		session := triage.NewSession(threads, loadStaticIgnores(), store, cfg.View.PageSize)

		opts.Version = Version
		opts.Debounce = time.Duration(cfg.View.DebounceMS) * time.Millisecond
		opts.ExportPath = tuiExportPath

		model := tui.New(session, opts)
		p := tea.NewProgram(model, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiExportPath, "export-path", "kept_threads_export.json", "file the e key writes kept threads to")
}
