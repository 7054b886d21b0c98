package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/schedpanel/internal/jobs"
	"github.com/GriffinCanCode/schedpanel/internal/tui"
)

// NewPanelCmd creates the interactive control panel command
func NewPanelCmd(a *app) *cobra.Command {
	var (
		flagFields jobs.Fields
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Open the interactive control panel",
		Long: `Open the terminal control panel: edit the six job fields, press Run to submit,
and watch the backend log stream. Diagnostics go to --log-file since the panel
owns the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLogging(logFile); err != nil {
				return err
			}
			fields, err := a.resolveFields(flagFields)
			if err != nil {
				return err
			}

			a.serveMetrics(cmd.Context())
			return tui.Run(a.newPanel(), fields)
		},
	}

	cmd.Flags().AddFlagSet(fieldFlagSet(&flagFields))
	cmd.Flags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "schedpanel.log"), "Diagnostic log file")

	return cmd
}
