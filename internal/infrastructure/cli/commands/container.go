package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/animeprompt/internal/app"
)

// withContainer builds the container for cmd, runs fn and releases the
// container's resources afterwards.
func withContainer(cmd *cobra.Command, lazy *app.Lazy, fn func(*app.Container) error) error {
	container, err := lazy.Get(cmd.Context())
	if err != nil {
		return err
	}
	defer lazy.Close()
	return fn(container)
}
