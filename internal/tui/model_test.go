package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/schedpanel/internal/infrastructure/clock"
	"github.com/GriffinCanCode/schedpanel/internal/jobs"
	"github.com/GriffinCanCode/schedpanel/internal/logstream"
	"github.com/GriffinCanCode/schedpanel/internal/panel"
	"github.com/GriffinCanCode/schedpanel/internal/testutil"
)

type refusingDialer struct{}

func (refusingDialer) Dial(ctx context.Context, url string) (logstream.Conn, error) {
	return nil, errors.New("connection refused")
}

func newTestModel(t *testing.T, initial jobs.Fields) (Model, *panel.Panel, *testutil.MockSubmitter) {
	t.Helper()
	stream := logstream.DefaultConfig()
	stream.Dialer = refusingDialer{}
	stream.Clock = clock.Fake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	submitter := testutil.NewMockSubmitter(t)
	p := panel.New(panel.Config{Stream: stream, Submitter: submitter})
	t.Cleanup(func() { _ = p.Close() })

	model := NewModel(p, initial)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), p, submitter
}

func press(t *testing.T, model Model, messages ...tea.KeyMsg) Model {
	t.Helper()
	for _, message := range messages {
		updated, _ := model.Update(message)
		model = updated.(Model)
	}
	return model
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, r := range text {
		model = press(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return model
}

var (
	tabKey      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTabKey = tea.KeyMsg{Type: tea.KeyShiftTab}
	enterKey    = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestNewModelSeedsInputs(t *testing.T) {
	initial := testutil.SampleFields(t)
	model, _, _ := newTestModel(t, initial)

	assert.Equal(t, initial, model.Fields())
	assert.Equal(t, inputURL, model.Focused())
}

func TestFocusCycle(t *testing.T) {
	model, _, _ := newTestModel(t, jobs.Fields{})

	for i := 1; i <= runIndex; i++ {
		model = press(t, model, tabKey)
		assert.Equal(t, i, model.Focused())
	}

	model = press(t, model, tabKey)
	assert.Equal(t, inputURL, model.Focused(), "tab wraps from Run to the first input")

	model = press(t, model, shiftTabKey)
	assert.Equal(t, runIndex, model.Focused(), "shift+tab wraps backwards")
}

func TestTypingEditsFocusedInput(t *testing.T) {
	model, _, _ := newTestModel(t, jobs.Fields{})

	model = typeText(t, model, "http://x")
	model = press(t, model, tabKey)
	model = typeText(t, model, "2025-01-01 00:00:00")

	fields := model.Fields()
	assert.Equal(t, "http://x", fields.URL)
	assert.Equal(t, "2025-01-01 00:00:00", fields.TargetTime)
	assert.Empty(t, fields.ProfileName)
}

func TestEnterOnInputAdvancesFocus(t *testing.T) {
	model, _, submitter := newTestModel(t, jobs.Fields{})

	model = press(t, model, enterKey)
	assert.Equal(t, inputTargetTime, model.Focused())
	submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestEnterOnRunSubmitsSnapshot(t *testing.T) {
	initial := testutil.SampleFields(t)
	model, p, submitter := newTestModel(t, initial)

	for i := 0; i < runIndex; i++ {
		model = press(t, model, tabKey)
	}
	require.Equal(t, runIndex, model.Focused())

	model = press(t, model, enterKey)
	require.NoError(t, p.Drain(context.Background()))

	submitter.AssertCalled(t, "Submit", mock.Anything, initial)
	assert.Equal(t, []string{panel.TaskStartedLine}, p.Log().Lines())
}

func TestCtrlSSubmitsFromAnyInput(t *testing.T) {
	model, p, submitter := newTestModel(t, jobs.Fields{})
	model = typeText(t, model, "http://y")

	model = press(t, model, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NoError(t, p.Drain(context.Background()))

	submitter.AssertCalled(t, "Submit", mock.Anything, jobs.Fields{URL: "http://y"})
	assert.Equal(t, inputURL, model.Focused())
}

func TestQuitKeys(t *testing.T) {
	for _, message := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		t.Run(message.String(), func(t *testing.T) {
			model, _, _ := newTestModel(t, jobs.Fields{})
			_, command := model.Update(message)
			require.NotNil(t, command)
			assert.Equal(t, tea.Quit(), command())
		})
	}
}

func TestLogUpdateRendersIntoViewport(t *testing.T) {
	model, p, _ := newTestModel(t, jobs.Fields{})

	p.Log().Append("WebSocket connected")
	p.Log().Append("[INFO] Run called with URL: http://x")

	updated, command := model.Update(logUpdatedMsg{})
	model = updated.(Model)
	assert.NotNil(t, command, "keeps listening for updates")

	view := model.View()
	assert.Contains(t, view, "WebSocket connected")
	assert.Contains(t, view, "[INFO] Run called with URL: http://x")
	assert.Contains(t, view, "2 lines")
}

func TestViewBeforeSize(t *testing.T) {
	_, p, _ := newTestModel(t, jobs.Fields{})
	model := NewModel(p, jobs.Fields{})
	assert.Equal(t, "Starting...", model.View())
}

func TestViewShowsFormAndStatus(t *testing.T) {
	model, _, _ := newTestModel(t, testutil.SampleFields(t))
	view := model.View()

	for _, label := range labels {
		assert.Contains(t, view, label)
	}
	assert.Contains(t, view, "Run")
	assert.Contains(t, view, "stream idle")
	assert.Contains(t, view, logstream.DefaultURL)
	assert.True(t, strings.Contains(view, "http://x"))
}
