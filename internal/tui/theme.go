package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/GriffinCanCode/schedpanel/internal/logstream"
)

// Theme defines the colors of the control panel. All colors use lipgloss
// ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Accent     lipgloss.Color

	BorderColor lipgloss.Color
	HelpText    lipgloss.Color

	// Stream state colors.
	StateLive     lipgloss.Color
	StatePending  lipgloss.Color
	StateTerminal lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText:    lipgloss.Color("252"),
	FaintText:     lipgloss.Color("243"),
	Accent:        lipgloss.Color("39"),
	BorderColor:   lipgloss.Color("240"),
	HelpText:      lipgloss.Color("241"),
	StateLive:     lipgloss.Color("78"),
	StatePending:  lipgloss.Color("214"),
	StateTerminal: lipgloss.Color("203"),
}

// StateColor returns the status line color for a stream state.
func (theme Theme) StateColor(state logstream.State) lipgloss.Color {
	switch state {
	case logstream.StateOpen:
		return theme.StateLive
	case logstream.StateConnecting, logstream.StateRetrying:
		return theme.StatePending
	case logstream.StateGaveUp, logstream.StateStopped:
		return theme.StateTerminal
	default:
		return theme.FaintText
	}
}

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	focused lipgloss.Style
	button  lipgloss.Style
	active  lipgloss.Style
	logBox  lipgloss.Style
	help    lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		label:   lipgloss.NewStyle().Foreground(theme.FaintText),
		focused: lipgloss.NewStyle().Foreground(theme.Accent),
		button: lipgloss.NewStyle().
			Foreground(theme.NormalText).
			Padding(0, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.BorderColor),
		active: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent).
			Padding(0, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Accent),
		logBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor),
		help: lipgloss.NewStyle().Foreground(theme.HelpText),
	}
}
