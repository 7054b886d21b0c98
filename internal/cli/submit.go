package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/schedpanel/internal/jobs"
)

// NewSubmitCmd creates the headless submit command
func NewSubmitCmd(a *app) *cobra.Command {
	var (
		flagFields jobs.Fields
		follow     bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one job without the interactive panel",
		Long: `Submit one job to the backend and print the log. With --follow the log stream is
opened first and followed until the retry budget is spent or the command is
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newLineWriter(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}
			if err := a.initLogging(""); err != nil {
				return err
			}
			fields, err := a.resolveFields(flagFields)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a.serveMetrics(ctx)

			p := a.newPanel()
			defer p.Close()

			if follow {
				if err := p.Start(); err != nil {
					return err
				}
				// Let the first dial settle so the backend's announcement is not missed
				waitForLine(p.Log(), 0, a.cfg.Stream.HandshakeTimeout)
			}

			a.logger.Debug("Submitting job", zap.String("endpoint", a.cfg.Submit.URL), zap.String("url", fields.URL))
			p.Submit(fields)

			// Without --follow only the lines already present are printed
			done := closedChan()
			if follow {
				done = p.Stream().Done()
			}
			if _, err := followLog(ctx, p.Log(), 0, done, w); err != nil {
				return err
			}
			return drain(ctx, p.Drain)
		},
	}

	cmd.Flags().AddFlagSet(fieldFlagSet(&flagFields))
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow the log stream after submitting")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or json")

	return cmd
}

// drain waits for in-flight submissions. An interrupt abandons them.
func drain(ctx context.Context, wait func(context.Context) error) error {
	if err := wait(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
