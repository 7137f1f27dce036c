package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/domain"
)

// NewResolveCommand creates the resolve command. It prints the intent an
// utterance maps to without proposing or running anything.
func NewResolveCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <utterance...>",
		Short:   "Show the intent a request resolves to",
		Example: `  investigator resolve "scan the ports of 192.0.2.10"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := provider.Get(cmd.Context())
			if err != nil {
				return err
			}
			intent, found := container.Resolver.Resolve(cmd.Context(), strings.Join(args, " "))
			return writeIntent(cmd.OutOrStdout(), intent, found)
		},
	}
}

// writeIntent prints the intent as indented JSON, or the unknown sentinel.
func writeIntent(out io.Writer, intent domain.Intent, found bool) error {
	if !found {
		intent = domain.Intent{Action: domain.ActionUnknown}
	}
	data, err := json.MarshalIndent(intent, "", "  ")
	if err != nil {
		return fmt.Errorf("encode intent: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
