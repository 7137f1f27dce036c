package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/infrastructure/history"
)

// NewLogsCommand creates the logs command with all subcommands
func NewLogsCommand(provider *app.Provider) *cobra.Command {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect execution log files",
	}

	logsCmd.AddCommand(
		newLogsListCommand(provider),
		newLogsShowCommand(provider),
	)

	return logsCmd
}

// newLogsListCommand creates the 'logs list' subcommand
func newLogsListCommand(provider *app.Provider) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List execution logs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New(ErrInvalidLimit)
			}
			writer, err := logWriter(cmd, provider)
			if err != nil {
				return err
			}
			return listLogs(cmd.OutOrStdout(), writer, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max files to show (0 for all)")
	return cmd
}

// newLogsShowCommand creates the 'logs show' subcommand
func newLogsShowCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print one execution log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			writer, err := logWriter(cmd, provider)
			if err != nil {
				return err
			}
			return showLog(cmd.OutOrStdout(), writer, args[0])
		},
	}
}

func logWriter(cmd *cobra.Command, provider *app.Provider) (*history.LogWriter, error) {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return nil, err
	}
	if container.LogWriter == nil {
		return nil, errors.New(ErrLogWriterUnavailable)
	}
	return container.LogWriter, nil
}

func listLogs(out io.Writer, writer *history.LogWriter, limit int) error {
	files, err := writer.List()
	if err != nil {
		return fmt.Errorf("failed to list logs in %s: %w", writer.Dir(), err)
	}
	if len(files) == 0 {
		fmt.Fprintln(out, MsgNoLogsWritten)
		return nil
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	for _, f := range files {
		fmt.Fprintf(out, "%s | %s\n", f.Name, humanize.Bytes(uint64(f.Size)))
	}
	return nil
}

// showLog prints a log by file name. Only names listed in the log directory
// are accepted.
func showLog(out io.Writer, writer *history.LogWriter, name string) error {
	files, err := writer.List()
	if err != nil {
		return fmt.Errorf("failed to list logs in %s: %w", writer.Dir(), err)
	}
	for _, f := range files {
		if f.Name != name {
			continue
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Path, err)
		}
		_, err = out.Write(data)
		return err
	}
	return fmt.Errorf("log %s not found in %s", name, writer.Dir())
}
