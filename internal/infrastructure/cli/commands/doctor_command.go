package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/animeprompt/internal/app"
	"github.com/doeshing/animeprompt/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose config, API key and history setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, lazy, func(container *app.Container) error {
				return runDoctorDiagnostics(cmd, cmd.OutOrStdout(), container)
			})
		},
	}
}

// runDoctorDiagnostics runs environment diagnostics
func runDoctorDiagnostics(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container.DoctorService == nil {
		return errors.New(ErrDoctorServiceUnavailable)
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	displayDoctorReport(out, report)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	if failed := report.Failures(); failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

// displayDoctorReport displays the health check report
func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
