package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var stateListFlag bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the stored corpus",
	Long: `Prints a summary of the stored corpus: how many references are
known, how many have been enriched, and the per-partition breakdown.
With --list, every enriched record is printed.`,
	RunE: runState,
}

func init() {
	stateCmd.Flags().BoolVar(&stateListFlag, "list", false, "list every enriched record")
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command, _ []string) error {
	if corpusStore == nil {
		return errors.New("corpus store not configured")
	}

	corpus, err := corpusStore.Load(context.Background())
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	records := corpus.SortedRecords()
	cmd.Printf("Known references: %d\n", len(corpus.Known))
	cmd.Printf("Enriched records: %d\n", len(records))

	byPartition := make(map[string]int)
	for _, rec := range records {
		byPartition[rec.Partition]++
	}
	partitions := make([]string, 0, len(byPartition))
	for p := range byPartition {
		partitions = append(partitions, p)
	}
	sort.Strings(partitions)
	for _, p := range partitions {
		label := p
		if label == "" {
			label = "(none)"
		}
		cmd.Printf("  %s: %d\n", label, byPartition[p])
	}

	if !stateListFlag {
		return nil
	}

	for _, rec := range records {
		cmd.Printf("- %s [%s] %s\n", rec.Name, rec.Partition, rec.URL)
	}
	return nil
}
