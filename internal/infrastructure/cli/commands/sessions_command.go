package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/domain"
)

// NewSessionsCommand creates the sessions command with all subcommands
func NewSessionsCommand(provider *app.Provider) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect saved chat sessions",
	}

	sessionsCmd.AddCommand(
		newSessionsListCommand(provider),
		newSessionsShowCommand(provider),
	)

	return sessionsCmd
}

// newSessionsListCommand creates the 'sessions list' subcommand
func newSessionsListCommand(provider *app.Provider) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New(ErrInvalidLimit)
			}
			records, err := loadSessions(cmd, provider)
			if err != nil {
				return err
			}
			listSessions(cmd.OutOrStdout(), records, limit)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultSessionLimit, "Max sessions to show (0 for all)")
	return cmd
}

// newSessionsShowCommand creates the 'sessions show' subcommand
func newSessionsShowCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index|id>",
		Short: "Print the transcript of one session (index 1 is the newest)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadSessions(cmd, provider)
			if err != nil {
				return err
			}
			record, ok := findSession(records, args[0])
			if !ok {
				return fmt.Errorf("session %s not found", args[0])
			}
			showSession(cmd.OutOrStdout(), record)
			return nil
		},
	}
}

// loadSessions returns every stored session, newest first.
func loadSessions(cmd *cobra.Command, provider *app.Provider) ([]domain.SessionRecord, error) {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return nil, err
	}
	if container.SessionStore == nil {
		return nil, errors.New(ErrSessionStoreUnavailable)
	}
	records, err := container.SessionStore.Records()
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	newestFirst := make([]domain.SessionRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, records[i])
	}
	return newestFirst, nil
}

func listSessions(out io.Writer, records []domain.SessionRecord, limit int) {
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoSessionsRecorded)
		return
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	for i, rec := range records {
		fmt.Fprintf(out, "%d | %s | %d turns | %s\n",
			i+1,
			rec.Timestamp.Local().Format(TimestampFormat),
			len(rec.Chat),
			firstUtterance(rec.Chat))
	}
}

func showSession(out io.Writer, record domain.SessionRecord) {
	if record.ID != "" {
		fmt.Fprintf(out, "Session %s\n", record.ID)
	}
	fmt.Fprintf(out, "Saved: %s\n\n", record.Timestamp.Local().Format(TimestampFormat))
	for _, turn := range record.Chat {
		if turn.User != "" {
			fmt.Fprintf(out, "> %s\n", turn.User)
		}
		fmt.Fprintf(out, "%s\n\n", turn.Reply)
	}
}

// findSession matches a 1-based index into the newest-first list, or a session ID.
func findSession(records []domain.SessionRecord, ref string) (domain.SessionRecord, bool) {
	if index, err := strconv.Atoi(ref); err == nil {
		if index >= 1 && index <= len(records) {
			return records[index-1], true
		}
		return domain.SessionRecord{}, false
	}
	for _, rec := range records {
		if rec.ID == ref {
			return rec, true
		}
	}
	return domain.SessionRecord{}, false
}

func firstUtterance(chat domain.Transcript) string {
	for _, turn := range chat {
		if turn.User != "" {
			return truncate(turn.User, sessionPreviewWidth)
		}
	}
	return ""
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
