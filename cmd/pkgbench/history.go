package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkgbench/pkgbench/pkg/config"
	"github.com/pkgbench/pkgbench/pkg/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past benchmark invocations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent benchmark invocations",
	RunE:  runHistoryList,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20,
		"Maximum number of invocations to list")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	ctx := cmd.Context()

	store := history.NewStore(log, &cfg.History)

	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("starting history store: %w", err)
	}

	defer func() {
		if err := store.Stop(); err != nil {
			log.WithError(err).Warn("Failed to stop history store")
		}
	}()

	summaries, err := store.ListInvocations(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("listing invocations: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No benchmark invocations recorded.")

		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INVOCATION\tRUNS\tSUCCEEDED\tFIRST RUN")

	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
			s.InvocationID,
			s.Records,
			s.Succeeded,
			time.Unix(s.FirstRun, 0).UTC().Format(time.RFC3339),
		)
	}

	return w.Flush()
}
