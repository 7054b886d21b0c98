package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/config"
)

// NewRootCmd creates a new root command. Without a subcommand it opens
// the control panel.
func NewRootCmd() *cobra.Command {
	a := &app{}
	panelCmd := NewPanelCmd(a)

	cmd := &cobra.Command{
		Use:   "schedpanel",
		Short: "Control panel for the browser automation scheduler",
		Long: `schedpanel submits jobs to the scheduler backend and follows its live log stream.

Form defaults come from TARGETURL, TARGETTIME, KEYWORDS, CHROMEPATH, DATADIR and
PROFILENAME; a --preset file overrides them and field flags override both.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: panelCmd.RunE,
	}

	cmd.PersistentFlags().BoolVar(&a.opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.opts.streamURL, "stream-url", "", "Log stream endpoint (overrides STREAM_URL)")
	cmd.PersistentFlags().StringVar(&a.opts.submitURL, "submit-url", "", "Job submission endpoint (overrides SUBMIT_URL)")
	cmd.PersistentFlags().StringVar(&a.opts.preset, "preset", "", "Form preset file (.yaml, .yml or .toml)")

	// The bare command behaves like `panel`
	cmd.Flags().AddFlagSet(panelCmd.Flags())

	cmd.AddCommand(
		panelCmd,
		NewSubmitCmd(a),
		NewTailCmd(a),
		NewServeCmd(a),
	)

	return cmd
}

// loadConfig reads the environment and applies the endpoint flags.
func (a *app) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.opts.streamURL != "" {
		cfg.Stream.URL = a.opts.streamURL
	}
	if a.opts.submitURL != "" {
		cfg.Submit.URL = a.opts.submitURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}
