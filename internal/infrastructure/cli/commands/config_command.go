package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/investigator-go/internal/app"
	configapp "github.com/doeshing/investigator-go/internal/application/config"
	"github.com/doeshing/investigator-go/internal/domain"
	"github.com/doeshing/investigator-go/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/investigator-go/internal/infrastructure/config"
)

const envKeyEditor = "EDITOR"

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(provider *app.Provider) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect Investigator configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, provider, func(_ *configinfra.FileLoader, cfg domain.Config) error {
				return showConfiguration(cmd.OutOrStdout(), cfg)
			})
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(provider),
		newConfigPathCommand(provider),
		newConfigGetCommand(provider),
		newConfigValidateCommand(provider),
		newConfigDiffCommand(provider),
		newConfigEditCommand(provider),
	)

	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, provider, func(_ *configinfra.FileLoader, cfg domain.Config) error {
				return showConfiguration(cmd.OutOrStdout(), cfg)
			})
		},
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, provider, func(loader *configinfra.FileLoader, _ domain.Config) error {
				fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
				return nil
			})
		},
	}
}

// newConfigGetCommand creates the 'config get' subcommand
func newConfigGetCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print one configuration value (dot separated key)",
		Example: "  investigator config get modules.username_hunt.concurrency",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, provider, func(_ *configinfra.FileLoader, cfg domain.Config) error {
				return getConfigurationValue(cmd.OutOrStdout(), cfg, args[0])
			})
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, provider, func(_ *configinfra.FileLoader, cfg domain.Config) error {
				if err := configapp.Validate(cfg); err != nil {
					return fmt.Errorf("configuration invalid: %w", err)
				}
				out := cmd.OutOrStdout()
				helpers.PrintWarnings(out, helpers.ConfigWarnings(cfg))
				fmt.Fprintln(out, MsgConfigurationValid)
				return nil
			})
		},
	}
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show differences from the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, provider, func(_ *configinfra.FileLoader, cfg domain.Config) error {
				return showConfigurationDiff(cmd.OutOrStdout(), cfg)
			})
		},
	}
}

// newConfigEditCommand creates the 'config edit' subcommand
func newConfigEditCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration file in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cmd, provider, func(loader *configinfra.FileLoader, _ domain.Config) error {
				return editConfigurationInEditor(loader.Path())
			})
		},
	}
}

// withConfig reloads the configuration file and hands it to fn.
func withConfig(cmd *cobra.Command, provider *app.Provider, fn func(*configinfra.FileLoader, domain.Config) error) error {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return err
	}
	if container.ConfigLoader == nil {
		return errors.New(ErrConfigLoaderUnavailable)
	}
	cfg, err := loadConfiguration(cmd.Context(), container.ConfigLoader)
	if err != nil {
		return err
	}
	return fn(container.ConfigLoader, cfg)
}

func loadConfiguration(ctx context.Context, loader *configinfra.FileLoader) (domain.Config, error) {
	cfg, err := loader.Load(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// showConfiguration displays the full configuration in YAML format
func showConfiguration(out io.Writer, cfg domain.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// getConfigurationValue retrieves a specific configuration value by key path
func getConfigurationValue(out io.Writer, cfg domain.Config, keyPath string) error {
	genericMap, err := helpers.ConfigToGenericMap(cfg)
	if err != nil {
		return err
	}

	keys := strings.Split(keyPath, ".")
	value, found := helpers.TraverseNestedMap(genericMap, keys)
	if !found {
		return fmt.Errorf("key %s not found in configuration", keyPath)
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// showConfigurationDiff shows the difference between current and default configuration
func showConfigurationDiff(out io.Writer, cfg domain.Config) error {
	defaults, err := configinfra.Parse(nil)
	if err != nil {
		return fmt.Errorf("failed to load default configuration: %w", err)
	}

	diff := cmp.Diff(defaults, cfg)
	if diff == "" {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
		return nil
	}

	fmt.Fprintln(out, diff)
	return nil
}

// editConfigurationInEditor opens the configuration file in the user's editor
func editConfigurationInEditor(path string) error {
	editorCommand := getEditorCommand()
	cmd := exec.Command(editorCommand, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editorCommand, err)
	}

	return nil
}

// getEditorCommand retrieves the editor command from environment or returns default
func getEditorCommand() string {
	if editor := os.Getenv(envKeyEditor); editor != "" {
		return editor
	}
	return DefaultEditorCommand
}
