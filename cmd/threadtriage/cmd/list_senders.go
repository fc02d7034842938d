package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"threadtriage/internal/triage"
)

var (
	sendersLimit int
	sendersJSON  bool
)

// SenderCount is one row of the sender ranking.
type SenderCount struct {
	Sender  string `json:"sender"`
	Threads int    `json:"threads"`
}

var listSendersCmd = &cobra.Command{
	Use:   "list-senders",
	Short: "List senders by thread count",
	Long: `List thread senders ranked by how many reviewable threads they sent.

Ignored threads are excluded, so this shows where the review effort will
actually go. Useful for growing the static ignore list: heavy senders that
never matter are candidates for ignored_senders or ignored_domains.

Examples:
  threadtriage list-senders --limit 20
  threadtriage list-senders --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}

		counts := make(map[string]int)
		for _, t := range session.FilteredWith(triage.NewView()) {
			sender := triage.ExtractAddress(t.From)
			if sender == "" {
				continue
			}
			counts[sender]++
		}

		if len(counts) == 0 {
			fmt.Println("No senders found.")
			return nil
		}

		rows := make([]SenderCount, 0, len(counts))
		for sender, n := range counts {
			rows = append(rows, SenderCount{Sender: sender, Threads: n})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Threads != rows[j].Threads {
				return rows[i].Threads > rows[j].Threads
			}
			return rows[i].Sender < rows[j].Sender
		})

		if sendersLimit > 0 && len(rows) > sendersLimit {
			rows = rows[:sendersLimit]
		}

		if sendersJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		fmt.Printf("%-40s  %s\n", "Sender", "Threads")
		for _, row := range rows {
			fmt.Printf("%-40s  %d\n", row.Sender, row.Threads)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listSendersCmd)
	listSendersCmd.Flags().IntVar(&sendersLimit, "limit", 25, "maximum rows to show (0 for all)")
	listSendersCmd.Flags().BoolVar(&sendersJSON, "json", false, "output as JSON")
}
