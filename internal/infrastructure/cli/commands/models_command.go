package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/animeprompt/internal/app"
	configapp "github.com/doeshing/animeprompt/internal/application/config"
	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

// modelTestTimeout bounds 'models test'.
const modelTestTimeout = 20 * time.Second

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(lazy *app.Lazy) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "List and select text-generation models",
	}

	modelsCmd.AddCommand(
		newModelsListCommand(lazy),
		newModelsUseCommand(lazy),
		newModelsTestCommand(lazy),
	)

	return modelsCmd
}

// newModelsListCommand creates the 'models list' subcommand
func newModelsListCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				return listModels(cmd.Context(), cmd.OutOrStdout(), container)
			})
		},
	}
}

// newModelsUseCommand creates the 'models use' subcommand
func newModelsUseCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set default model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				if err := setDefaultModel(cmd.Context(), container, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Default model set to %s\n", args[0])
				return nil
			})
		},
	}
}

// newModelsTestCommand creates the 'models test' subcommand
func newModelsTestCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Send a one-word request to a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				return testModel(cmd.Context(), cmd.OutOrStdout(), container, args[0])
			})
		},
	}
}

// listModels lists all configured models
func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROVIDER\tMODEL ID\tDEFAULT")
	for _, model := range cfg.Models {
		defaultMarker := ""
		if cfg.Preferences.DefaultModel == model.Name {
			defaultMarker = "*"
		}
		provider := model.Provider
		if provider == "" {
			provider = domain.ProviderKindGemini
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", model.Name, provider, model.ModelID, defaultMarker)
	}
	return w.Flush()
}

// setDefaultModel sets the default model
func setDefaultModel(ctx context.Context, container *app.Container, modelName string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.SetDefaultModel(modelName); err != nil {
		return err
	}

	return saveConfigWithValidation(container, cfg)
}

// testModel sends a single keyword to the named model
func testModel(ctx context.Context, out io.Writer, container *app.Container, modelName string) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	model, exists := cfg.FindModelByName(modelName)
	if !exists {
		return fmt.Errorf("model %s not found", modelName)
	}
	if container.ProviderFactory == nil || container.Credentials == nil {
		return errors.New("provider factory unavailable")
	}

	provider, err := container.ProviderFactory.ForModel(model)
	if err != nil {
		return fmt.Errorf("failed to create provider for model %s: %w", modelName, err)
	}

	apiKey, err := container.Credentials.Resolve("")
	if err != nil {
		return err
	}

	testCtx, cancel := context.WithTimeout(ctx, modelTestTimeout)
	defer cancel()

	started := time.Now()
	_, err = provider.Generate(testCtx, ports.ProviderRequest{
		APIKey:            apiKey,
		SystemInstruction: "Reply with a single word.",
		UserMessage:       "ping",
	})
	if err != nil {
		return fmt.Errorf("model %s test failed: %w", modelName, err)
	}

	fmt.Fprintf(out, "Model %s responded in %s.\n", modelName, time.Since(started).Round(time.Millisecond))
	return nil
}

// saveConfigWithValidation validates cfg and writes it to the config file
func saveConfigWithValidation(container *app.Container, cfg domain.Config) error {
	if container.ConfigLoader == nil {
		return errors.New(ErrConfigLoaderUnavailable)
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := container.ConfigLoader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
