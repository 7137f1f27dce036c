package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/domain"
)

var errConfirmationRequired = errors.New("stdin is not a terminal; pass --yes to run without confirmation")

type runOptions struct {
	lang    string
	yes     bool
	copyOut bool
}

func newRunCommand(provider *app.Provider) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <action> <target>",
		Short: "Run one action without the chat",
		Long: "Run one action directly. Actions: " + actionNames() + ".\n" +
			"The target goes through the same guardrail as chat requests.",
		Example: "  investigator run scan_ip 192.0.2.10\n  investigator run leak_check jane@example.com --yes",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, provider, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "Output language (pt or en)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVarP(&opts.copyOut, "copy", "c", false, "Copy the tool output to the clipboard")
	return cmd
}

func runAction(cmd *cobra.Command, provider *app.Provider, opts runOptions, rawAction, target string) error {
	action, ok := domain.ParseAction(strings.TrimSpace(rawAction))
	if !ok || !action.Executable() {
		return fmt.Errorf("unknown action %q (valid: %s)", rawAction, actionNames())
	}
	intent := domain.NewIntent(action, strings.TrimSpace(target))
	if err := intent.Validate(); err != nil {
		return err
	}

	container, err := provider.Get(cmd.Context())
	if err != nil {
		return err
	}
	lang, err := resolveLanguage(container.Config, opts.lang)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	RenderIntent(out, intent, lang)

	if !opts.yes {
		prompter := NewPrompter(cmd.InOrStdin(), out)
		prompter.Lang = lang
		if !prompter.Enabled() {
			return errConfirmationRequired
		}
		approved, err := prompter.Confirm(domain.Text(domain.TextConfirmQuestion, lang))
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !approved {
			RenderReply(out, domain.Text(domain.TextCancelled, lang))
			return nil
		}
	}

	var spinner *Spinner
	if isTerminal(out) {
		spinner = NewSpinner(out)
		spinner.Start()
	}
	raw := container.Executor.Execute(cmd.Context(), intent, lang)
	if spinner != nil {
		spinner.Stop()
	}
	RenderOutput(out, lang, raw)

	if opts.copyOut {
		if err := NewClipboard().Copy(raw); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}
	return nil
}

func actionNames() string {
	actions := domain.Actions()
	names := make([]string, 0, len(actions))
	for _, action := range actions {
		names = append(names, string(action))
	}
	return strings.Join(names, ", ")
}
