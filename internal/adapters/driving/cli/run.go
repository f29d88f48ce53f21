package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan the indexes and process new documents",
	Long: `Performs one full pass: fetches every configured index page,
downloads and summarises documents not seen before, updates the stored
corpus and the reports, and emails a digest when mail is configured.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	cmd.Println("Scanning indexes...")

	result, err := watchService.Run(context.Background())
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	cmd.Printf("Run %s finished.\n", result.RunID)
	cmd.Printf("Discovered: %d, new: %d, processed: %d, failed: %d\n",
		result.Discovered, result.New, result.Processed, result.Failed)

	if result.Processed == 0 {
		cmd.Println("No new documents.")
		return nil
	}

	for _, rec := range result.Records {
		cmd.Printf("  + %s\n", rec.Name)
	}
	if result.Notified {
		cmd.Println("Digest email sent.")
	}

	return nil
}
