package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewTailCmd creates the log stream tail command
func NewTailCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print the backend log stream",
		Long: `Connect to the backend log stream and print every line until the retry budget
is spent or the command is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newLineWriter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}
			if err := a.initLogging(""); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a.serveMetrics(ctx)

			p := a.newPanel()
			defer p.Close()
			if err := p.Start(); err != nil {
				return err
			}

			n, err := followLog(ctx, p.Log(), 0, p.Stream().Done(), w)
			a.logger.Debug("Tail finished",
				zap.Int("lines", n),
				zap.Stringer("state", p.Stream().State()),
				zap.Int("attempts", p.Stream().Attempts()),
			)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")

	return cmd
}
