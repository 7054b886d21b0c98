package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GriffinCanCode/schedpanel/internal/jobs"
	"github.com/GriffinCanCode/schedpanel/internal/panel"
)

// Form input indices. runIndex is the Run button, focused after the last
// input.
const (
	inputURL = iota
	inputTargetTime
	inputKeywords
	inputChromePath
	inputUserDataDir
	inputProfileName
	runIndex
)

var labels = [...]string{
	inputURL:         "URL",
	inputTargetTime:  "Target Time (YYYY-MM-DD HH:MM:SS)",
	inputKeywords:    "Button Keywords (comma separated)",
	inputChromePath:  "ChromeDriver Path",
	inputUserDataDir: "User Data Dir",
	inputProfileName: "Profile Name",
}

// Rows taken by everything except the log body: title, six inputs, a
// blank line, the bordered button, the log header, the log border, the
// status line and help.
const chromeHeight = 1 + runIndex + 1 + 3 + 1 + 2 + 1 + 1

const stateRefreshInterval = 500 * time.Millisecond

type logUpdatedMsg struct{}

type stateTickMsg struct{}

// Model is the bubbletea model of the control panel. It owns the form
// field state; the operator log lives in the panel.
type Model struct {
	panel  *panel.Panel
	keys   KeyMap
	theme  Theme
	styles styles

	inputs   []textinput.Model
	focus    int
	viewport viewport.Model

	width  int
	height int
	ready  bool
}

// NewModel creates a model with the inputs seeded from initial and focus
// on the first input.
func NewModel(p *panel.Panel, initial jobs.Fields) Model {
	values := [...]string{
		inputURL:         initial.URL,
		inputTargetTime:  initial.TargetTime,
		inputKeywords:    initial.ButtonKeywords,
		inputChromePath:  initial.ChromePath,
		inputUserDataDir: initial.UserDataDir,
		inputProfileName: initial.ProfileName,
	}

	inputs := make([]textinput.Model, runIndex)
	for i := range inputs {
		input := textinput.New()
		input.Prompt = "> "
		input.SetValue(values[i])
		inputs[i] = input
	}
	inputs[inputTargetTime].Placeholder = jobs.TargetTimeLayout
	inputs[inputKeywords].Placeholder = "buy,reserve"
	inputs[inputProfileName].Placeholder = "Default"

	model := Model{
		panel:    p,
		keys:     DefaultKeyMap,
		theme:    DefaultTheme,
		styles:   newStyles(DefaultTheme),
		inputs:   inputs,
		viewport: viewport.New(0, 0),
	}
	model.setFocus(0)
	return model
}

// Fields snapshots the six input values.
func (model Model) Fields() jobs.Fields {
	return jobs.Fields{
		URL:            model.inputs[inputURL].Value(),
		TargetTime:     model.inputs[inputTargetTime].Value(),
		ButtonKeywords: model.inputs[inputKeywords].Value(),
		ChromePath:     model.inputs[inputChromePath].Value(),
		UserDataDir:    model.inputs[inputUserDataDir].Value(),
		ProfileName:    model.inputs[inputProfileName].Value(),
	}
}

// Focused returns the index of the focused element; runIndex is the Run
// button.
func (model Model) Focused() int {
	return model.focus
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		listenForLogUpdate(model.panel.Log().Updated()),
		tickState(),
	)
}

// listenForLogUpdate returns a tea.Cmd that blocks until the log signals
// an append.
func listenForLogUpdate(updated <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updated; !ok {
			return nil
		}
		return logUpdatedMsg{}
	}
}

// tickState refreshes the status line; state changes without a log line
// (a dial starting) would otherwise go unseen.
func tickState() tea.Cmd {
	return tea.Tick(stateRefreshInterval, func(time.Time) tea.Msg { return stateTickMsg{} })
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.viewport.Width = max(message.Width-2, 1)
		model.viewport.Height = max(message.Height-chromeHeight, 3)
		model.ready = true
		model.refreshLog()
		return model, nil

	case logUpdatedMsg:
		model.refreshLog()
		return model, listenForLogUpdate(model.panel.Log().Updated())

	case stateTickMsg:
		return model, tickState()

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model.updateFocusedInput(message)
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Submit):
		model.submit()
		return model, nil

	case key.Matches(message, model.keys.Activate):
		if model.focus == runIndex {
			model.submit()
			return model, nil
		}
		return model, model.setFocus(model.focus + 1)

	case key.Matches(message, model.keys.Next):
		return model, model.setFocus((model.focus + 1) % (runIndex + 1))

	case key.Matches(message, model.keys.Previous):
		return model, model.setFocus((model.focus + runIndex) % (runIndex + 1))

	case key.Matches(message, model.keys.PageUp, model.keys.PageDown):
		var command tea.Cmd
		model.viewport, command = model.viewport.Update(message)
		return model, command
	}

	return model.updateFocusedInput(message)
}

func (model Model) updateFocusedInput(message tea.Msg) (tea.Model, tea.Cmd) {
	if model.focus >= runIndex {
		return model, nil
	}
	var command tea.Cmd
	model.inputs[model.focus], command = model.inputs[model.focus].Update(message)
	return model, command
}

func (model *Model) setFocus(index int) tea.Cmd {
	model.focus = index
	var command tea.Cmd
	for i := range model.inputs {
		if i == index {
			command = model.inputs[i].Focus()
			model.inputs[i].PromptStyle = model.styles.focused
			continue
		}
		model.inputs[i].Blur()
		model.inputs[i].PromptStyle = lipgloss.NewStyle()
	}
	return command
}

func (model *Model) submit() {
	model.panel.Submit(model.Fields())
}

// refreshLog re-renders the log, following the tail unless the operator
// scrolled up.
func (model *Model) refreshLog() {
	follow := model.viewport.AtBottom()
	content := model.panel.Log().String()
	if model.viewport.Width > 0 {
		content = lipgloss.NewStyle().Width(model.viewport.Width).Render(content)
	}
	model.viewport.SetContent(content)
	if follow {
		model.viewport.GotoBottom()
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(model.styles.title.Render("Selenium Scheduler"))
	b.WriteString("\n")

	for i, input := range model.inputs {
		label := model.styles.label
		if i == model.focus {
			label = model.styles.focused
		}
		fmt.Fprintf(&b, "%s %s\n", label.Render(labels[i]+":"), input.View())
	}
	b.WriteString("\n")

	button := model.styles.button
	if model.focus == runIndex {
		button = model.styles.active
	}
	b.WriteString(button.Render("Run"))
	b.WriteString("\n")

	b.WriteString(model.styles.title.Render("Logs"))
	b.WriteString("\n")
	b.WriteString(model.styles.logBox.Render(model.viewport.View()))
	b.WriteString("\n")

	b.WriteString(model.statusLine())
	b.WriteString("\n")
	b.WriteString(model.styles.help.Render("tab/S-tab move · enter/C-s run · pgup/pgdn scroll · esc quit"))
	return b.String()
}

func (model Model) statusLine() string {
	stream := model.panel.Stream()
	state := stream.State()
	style := lipgloss.NewStyle().Foreground(model.theme.StateColor(state))

	status := fmt.Sprintf("stream %s", style.Render(state.String()))
	if retries := stream.Retries(); retries > 0 {
		status += fmt.Sprintf(" (retry %d)", retries)
	}
	return fmt.Sprintf("%s · %s · %d lines", status, stream.URL(), model.panel.Log().Len())
}
