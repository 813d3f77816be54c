package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/animeprompt/internal/app"
	"github.com/doeshing/animeprompt/internal/infrastructure/history"
	"github.com/doeshing/animeprompt/internal/pkg/filesystem"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(lazy *app.Lazy) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the keyword history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(lazy),
		newHistoryClearCommand(lazy),
		newHistoryPathCommand(lazy),
		newHistoryImportCommand(lazy),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(lazy *app.Lazy) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent keywords, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				return listHistoryEntries(cmd.OutOrStdout(), container, limit)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show (0 for all)")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(lazy *app.Lazy) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every recorded keyword",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				ok, err := confirmDestructive(cmd, assumeYes, "Clear all recorded keywords?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
				if err := clearHistory(container); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryPathCommand creates the 'history path' subcommand
func newHistoryPathCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the history location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				if container.HistoryStore == nil {
					return errors.New(ErrHistoryStoreUnavailable)
				}
				fmt.Fprintln(cmd.OutOrStdout(), container.HistoryStore.Path())
				return nil
			})
		},
	}
}

// newHistoryImportCommand creates the 'history import' subcommand
func newHistoryImportCommand(lazy *app.Lazy) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a plain-text history file into the sqlite backend",
		Long: "Copy a plain-text history file into the sqlite backend. The file defaults to\n" +
			"storage.history_file. Imported keywords are placed before the rows already\n" +
			"stored, and a file that was imported once is skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				return importHistory(cmd.OutOrStdout(), container, from)
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Plain-text history file to import (default storage.history_file)")
	return cmd
}

// listHistoryEntries lists recent history entries
func listHistoryEntries(out io.Writer, container *app.Container, limit int) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	entries, err := store.Entries(limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintln(out, entry)
	}
	return nil
}

// clearHistory clears the history store
func clearHistory(container *app.Container) error {
	if container.HistoryStore == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	if err := container.HistoryStore.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// importHistory loads the plain-text history into the sqlite store
func importHistory(out io.Writer, container *app.Container, from string) error {
	store, ok := container.HistoryStore.(*history.SQLiteStore)
	if !ok {
		return errors.New(ErrImportNeedsSQLite)
	}

	path := container.Config.Storage.HistoryFile
	if from != "" {
		path = filesystem.ExpandPath(from)
	}
	source := history.NewFileStore(path)
	imported, err := store.ImportFile(source)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", source.Path(), err)
	}

	if imported == 0 {
		fmt.Fprintf(out, MsgNothingToImport+"\n", source.Path())
		return nil
	}
	fmt.Fprintf(out, "Imported %d keyword(s) from %s\n", imported, source.Path())
	return nil
}
