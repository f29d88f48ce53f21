package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate reports from the stored corpus",
	Long: `Rebuilds the Markdown and HTML reports from the records already
in the corpus, without contacting the indexes. Useful after editing
report templates or recovering report files.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if corpusStore == nil {
		return errors.New("corpus store not configured")
	}
	if reportWriter == nil {
		return errors.New("report writer not configured")
	}

	ctx := context.Background()

	corpus, err := corpusStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	records := corpus.SortedRecords()
	if err := reportWriter.Write(ctx, records); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	cmd.Printf("Reports regenerated from %d record(s).\n", len(records))
	return nil
}
