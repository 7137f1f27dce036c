package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/infrastructure/security"
)

// NewGuardrailCommand creates the guardrail command with status/check subcommands
func NewGuardrailCommand(provider *app.Provider) *cobra.Command {
	guardrailCmd := &cobra.Command{
		Use:   "guardrail",
		Short: "Inspect the target guardrail",
	}

	guardrailCmd.AddCommand(
		newGuardrailStatusCommand(provider),
		newGuardrailCheckCommand(provider),
	)

	return guardrailCmd
}

// newGuardrailStatusCommand shows where the rules come from
func newGuardrailStatusCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show guardrail rule source and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			showGuardrailStatus(cmd.OutOrStdout(), container.Guardrail)
			return nil
		},
	}
}

// newGuardrailCheckCommand tests a target without running anything
func newGuardrailCheckCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:     "check <action> <target>",
		Short:   "Report whether a target would be allowed",
		Example: "  investigator guardrail check web_scan example.com",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := domain.ParseAction(args[0])
			if !ok || !action.Executable() {
				return fmt.Errorf("unknown action %q", args[0])
			}
			container, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			return checkTarget(cmd.OutOrStdout(), container.Guardrail, domain.NewIntent(action, args[1]))
		},
	}
}

func showGuardrailStatus(out io.Writer, guard *security.Guardrail) {
	fmt.Fprintf(out, "Rules source: %s\n", guard.Source())
	fmt.Fprintf(out, "Target patterns: %d\n", guard.RuleCount())
}

// checkTarget prints the verdict and fails when the target is blocked.
func checkTarget(out io.Writer, guard *security.Guardrail, intent domain.Intent) error {
	if err := guard.Check(intent); err != nil {
		fmt.Fprintf(out, "BLOCKED %s %s\n", intent.Action, strings.TrimSpace(intent.Target))
		return err
	}
	fmt.Fprintf(out, "ALLOWED %s %s\n", intent.Action, strings.TrimSpace(intent.Target))
	return nil
}
