package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/application/conversation"
	"github.com/doeshing/investigator-go/internal/domain"
)

const (
	promptPrefix   = "> "
	maxLineBytes   = 1 << 20
	chatBufferSize = 64 * 1024
)

func newChatCommand(provider *app.Provider) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive investigation chat",
		Long: "Start an interactive chat. Describe what you want to investigate, review the proposed action, " +
			"then answer yes or no. Type /lang pt|en to switch language, /reset to start over and /quit to leave.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, provider, lang)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Conversation language (pt or en)")
	return cmd
}

func runChat(cmd *cobra.Command, provider *app.Provider, langFlag string) error {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(container.Config, langFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	service := *container.Conversation
	if isTerminal(out) {
		spinner := NewSpinner(out)
		service.OnExecute = func(domain.Intent) func() {
			spinner.Start()
			return spinner.Stop
		}
	}
	return Chat(cmd.Context(), &service, conversation.New(lang), cmd.InOrStdin(), out)
}

// Chat reads utterances line by line and prints the replies of each turn
// until the input ends, the user types /quit or ctx is cancelled.
func Chat(ctx context.Context, service *conversation.Service, conv *conversation.Conversation, in io.Reader, out io.Writer) error {
	RenderReply(out, conversation.Greeting(conv.Lang))

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)

	for {
		fmt.Fprint(out, promptPrefix)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case next, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return <-readErr
			}
			line = strings.TrimSpace(next)
		}
		if line == "" {
			continue
		}

		if res := conversation.Command(conv, line); res.Handled {
			if res.Quit {
				return nil
			}
			RenderReply(out, res.Reply)
			continue
		}

		result := service.Turn(ctx, conv, line)
		RenderTurns(out, result.Replies)
	}
}

// readLines scans in on its own goroutine so a blocked read never delays
// cancellation. The error channel yields once, after lines is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, chatBufferSize), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func resolveLanguage(cfg domain.Config, flag string) (domain.Language, error) {
	if flag == "" {
		return cfg.GetLanguage(), nil
	}
	lang, ok := domain.ParseLanguage(flag)
	if !ok {
		return "", fmt.Errorf("unsupported language %q (use %s or %s)", flag, domain.LangPT, domain.LangEN)
	}
	return lang, nil
}
