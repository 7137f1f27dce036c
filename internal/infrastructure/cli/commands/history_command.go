package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/investigator-go/internal/infrastructure/history"
	"github.com/doeshing/investigator-go/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(provider *app.Provider) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the execution index",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(provider),
		newHistoryStatsCommand(provider),
		newHistoryClearCommand(provider),
		newHistoryExportCommand(provider),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(provider *app.Provider) *cobra.Command {
	var (
		limit  int
		action string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent executions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New(ErrInvalidLimit)
			}
			filter, err := parseActionFilter(action)
			if err != nil {
				return err
			}
			store, err := historyStore(cmd, provider)
			if err != nil {
				return err
			}
			return listHistoryEntries(cmd.OutOrStdout(), store, limit, filter)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show (0 for all)")
	cmd.Flags().StringVar(&action, "action", "", "Only show one action kind")
	return cmd
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate and per-action counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(cmd, provider)
			if err != nil {
				return err
			}
			return showHistoryStats(cmd.OutOrStdout(), store)
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(provider *app.Provider) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every execution record (log files are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(cmd, provider)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !force {
				reader := bufio.NewReader(cmd.InOrStdin())
				if !helpers.PromptForConfirmation(out, reader, "Clear execution history at "+store.Path()+"?") {
					fmt.Fprintln(out, MsgCancelled)
					return nil
				}
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(out, "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Append the execution index to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(cmd, provider)
			if err != nil {
				return err
			}
			count, err := exportHistory(store, history.NewFileStore(args[0]))
			if err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", count, args[0])
			return nil
		},
	}
}

func historyStore(cmd *cobra.Command, provider *app.Provider) (ports.HistoryRepository, error) {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return nil, err
	}
	if container.HistoryStore == nil {
		return nil, errors.New(ErrHistoryStoreUnavailable)
	}
	return container.HistoryStore, nil
}

func parseActionFilter(raw string) (domain.Action, error) {
	if raw == "" {
		return "", nil
	}
	action, ok := domain.ParseAction(raw)
	if !ok || !action.Executable() {
		return "", fmt.Errorf("unknown action %q", raw)
	}
	return action, nil
}

// listHistoryEntries lists recent history entries
func listHistoryEntries(out io.Writer, store ports.HistoryRepository, limit int, action domain.Action) error {
	records, err := store.Records(limit, action)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s | %-13s | %s | %s | %s\n",
			rec.Timestamp.Local().Format(TimestampFormat),
			rec.Action,
			statusLabel(rec.Success),
			rec.Target,
			time.Duration(rec.DurationMS)*time.Millisecond)
	}

	return nil
}

// showHistoryStats displays success rate and per-action counts
func showHistoryStats(out io.Writer, store ports.HistoryRepository) error {
	records, err := store.Records(MaxHistoryAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	successful := 0
	for _, rec := range records {
		if rec.Success {
			successful++
		}
	}

	fmt.Fprintf(out, "Executions analyzed: %d\nSuccess rate: %.1f%%\nAverage duration: %s\n",
		len(records),
		helpers.CalculateSuccessRate(successful, len(records)),
		helpers.AverageDuration(records))

	fmt.Fprintln(out, "Per action:")
	for _, stat := range helpers.CalculateActionStatistics(records) {
		fmt.Fprintf(out, "  %s: %d (%d ok)\n", stat.Action, stat.Count, stat.Successful)
	}

	fmt.Fprintln(out, "Top targets:")
	for _, stat := range helpers.CalculateTopTargets(records, 5) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Target, stat.Count)
	}

	return nil
}

// exportHistory copies every record, oldest first, into dst.
func exportHistory(src, dst ports.HistoryRepository) (int, error) {
	records, err := src.Records(0, "")
	if err != nil {
		return 0, err
	}
	for i := len(records) - 1; i >= 0; i-- {
		if err := dst.Save(records[i]); err != nil {
			return len(records) - 1 - i, err
		}
	}
	return len(records), nil
}

func statusLabel(success bool) string {
	if success {
		return "ok  "
	}
	return "fail"
}
