package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/schedpanel/internal/jobs"
	"github.com/GriffinCanCode/schedpanel/internal/panel"
)

// Run starts the panel's log stream and blocks in the TUI until the
// operator quits. The stream is torn down before Run returns.
func Run(p *panel.Panel, initial jobs.Fields, options ...tea.ProgramOption) error {
	if err := p.Start(); err != nil {
		return fmt.Errorf("failed to start log stream: %w", err)
	}
	defer p.Close()

	options = append([]tea.ProgramOption{tea.WithAltScreen()}, options...)
	program := tea.NewProgram(NewModel(p, initial), options...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
