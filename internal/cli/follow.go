package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/schedpanel/internal/panel"
)

// Output formats for streamed log lines.
const (
	outputText = "text"
	outputJSON = "json"
)

// jsonLine is one log line in --output json.
type jsonLine struct {
	Time string `json:"time"`
	Seq  int    `json:"seq"`
	Line string `json:"line"`
}

// lineWriter prints log lines in the selected format.
type lineWriter struct {
	out    io.Writer
	format string
	seq    int
	now    func() time.Time
}

func newLineWriter(out io.Writer, format string) (*lineWriter, error) {
	switch format {
	case outputText, outputJSON:
	default:
		return nil, fmt.Errorf("unsupported output format %q (want %s or %s)", format, outputText, outputJSON)
	}
	return &lineWriter{out: out, format: format, now: time.Now}, nil
}

func (w *lineWriter) write(line string) error {
	w.seq++
	if w.format == outputText {
		_, err := fmt.Fprintln(w.out, line)
		return err
	}

	data, err := sonic.Marshal(jsonLine{
		Time: w.now().UTC().Format(time.RFC3339Nano),
		Seq:  w.seq,
		Line: line,
	})
	if err != nil {
		return fmt.Errorf("failed to encode line: %w", err)
	}
	_, err = fmt.Fprintf(w.out, "%s\n", data)
	return err
}

// followLog writes every log line, starting at index from, until done
// closes or ctx ends. Lines present at that point are still flushed. It
// returns the index after the last line written.
func followLog(ctx context.Context, log *panel.Log, from int, done <-chan struct{}, w *lineWriter) (int, error) {
	flush := func() error {
		for _, line := range log.Since(from) {
			if err := w.write(line); err != nil {
				return err
			}
			from++
		}
		return nil
	}

	for {
		if err := flush(); err != nil {
			return from, err
		}
		select {
		case <-log.Updated():
		case <-done:
			return from, flush()
		case <-ctx.Done():
			return from, flush()
		}
	}
}

// waitForLine blocks until the log has more than n lines or timeout
// elapses.
func waitForLine(log *panel.Log, n int, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for log.Len() <= n {
		select {
		case <-log.Updated():
		case <-deadline.C:
			return log.Len() > n
		}
	}
	return true
}
