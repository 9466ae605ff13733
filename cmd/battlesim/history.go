package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded encounters",
	Long:  `List the most recent recorded encounters and the best score reached.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of encounters to list")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if historyLimit < 1 {
		return fmt.Errorf("--limit must be >= 1, got %d", historyLimit)
	}
	a, err := newApp(ctx, true, false)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	recent, err := a.repo.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	best, err := a.repo.BestScore(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENDED\tOUTCOME\tSEGMENT\tTURNS\tSCORE\tID")
	for _, b := range recent {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			b.EndedAt.Local().Format(time.DateTime), b.Outcome, b.Segment, b.Turns, b.ScoreAfter, b.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest score: %d\n", best)
	return nil
}
