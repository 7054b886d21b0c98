package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/schedpanel/internal/server"
)

// NewServeCmd creates the dev backend command
func NewServeCmd(a *app) *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local dev backend",
		Long: `Run a stand-in backend on HOST:PORT (127.0.0.1:8000 by default). POST /run is
accepted and announced on the /ws log stream; no job is scheduled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLogging(""); err != nil {
				return err
			}
			if host != "" {
				a.cfg.Server.Host = host
			}
			if port != "" {
				a.cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(a.cfg.Server, a.logger.Component("server"), a.metrics)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides HOST)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")

	return cmd
}
