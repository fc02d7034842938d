package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export kept threads to a JSON file",
	Long: `Write the threads currently marked kept to a JSON document, in the
order they appear in the thread document.

The export embeds full thread records, so the result is a self-contained
input for downstream tooling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}

		doc := session.Export(time.Now())
		if err := doc.WriteFile(exportOut); err != nil {
			return fmt.Errorf("write export: %w", err)
		}

		fmt.Printf("Exported %d thread(s) to %s\n", doc.TotalCount, exportOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "kept_threads_export.json", "output file")
}
