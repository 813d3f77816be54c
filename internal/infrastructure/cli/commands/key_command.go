package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/animeprompt/internal/app"
)

// NewKeyCommand creates the key command for the cached API key
func NewKeyCommand(lazy *app.Lazy) *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the cached API key",
	}

	keyCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the key cache location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withContainer(cmd, lazy, func(container *app.Container) error {
					if container.Credentials == nil {
						return errors.New(ErrCredentialStoreMissing)
					}
					fmt.Fprintln(cmd.OutOrStdout(), container.Credentials.Path())
					return nil
				})
			},
		},
		newKeyClearCommand(lazy),
	)

	return keyCmd
}

// newKeyClearCommand creates the 'key clear' subcommand
func newKeyClearCommand(lazy *app.Lazy) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the cached API key so the next run reads --key or the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				if container.Credentials == nil {
					return errors.New(ErrCredentialStoreMissing)
				}
				ok, err := confirmDestructive(cmd, assumeYes, "Remove the cached API key?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
				if err := container.Credentials.Clear(); err != nil {
					return fmt.Errorf("failed to clear key: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgKeyCleared)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
