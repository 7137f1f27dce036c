package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The returned provider owns the
// container and must be closed once the command finishes.
func NewRootCmd(opts Options) (*cobra.Command, *app.Provider) {
	provider := app.NewProvider(app.Options{Verbose: opts.Verbose})

	var lang string
	root := &cobra.Command{
		Use:   "investigator",
		Short: "Investigator - conversational OSINT assistant",
		Long: "Investigator turns plain-language requests into reconnaissance actions " +
			"(port scans, web scans, breach lookups, username hunts) and runs them after confirmation.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, provider, lang)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().StringVarP(&lang, "lang", "l", "", "Conversation language (pt or en)")

	flags := root.PersistentFlags()
	flags.StringVar(&provider.Options.ConfigPath, "config", "", "Config file (default ~/.investigator/config.yaml)")
	flags.StringVarP(&provider.Options.ModelOverride, "model", "m", "", "Override model name (default from config)")
	flags.BoolVarP(&provider.Options.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(
		newChatCommand(provider),
		newRunCommand(provider),
		commands.NewResolveCommand(provider),
		commands.NewSessionsCommand(provider),
		commands.NewHistoryCommand(provider),
		commands.NewLogsCommand(provider),
		commands.NewDoctorCommand(provider),
		commands.NewConfigCommand(provider),
		commands.NewGuardrailCommand(provider),
		commands.NewCacheCommand(provider),
		commands.NewVersionCommand(),
	)
	return root, provider
}
