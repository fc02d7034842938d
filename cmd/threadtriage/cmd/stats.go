package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review progress",
	Long: `Show triage counters for the thread document: total reviewable
threads and how many are kept, discarded, or still pending.

Ignored threads are excluded from every counter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}

		stats := session.Stats()

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("Threads: %s\n", cfg.ThreadsPath())
		fmt.Printf("  Total:     %d\n", stats.Total)
		fmt.Printf("  Kept:      %d\n", stats.Kept)
		fmt.Printf("  Discarded: %d\n", stats.Discarded)
		fmt.Printf("  Pending:   %d\n", stats.Pending)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}
