package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ackinari/debugview"
	"github.com/ackinari/debugview/config"
	"github.com/ackinari/debugview/internal/scroll"
	"github.com/ackinari/debugview/internal/style"
)

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// termViewer adapts the terminal session to the renderer's viewer
// boundary. The slot and lock gesture are driven from the keyboard.
type termViewer struct {
	slot   int
	lock   bool
	frame  string
	notice string
}

func (v *termViewer) ID() string          { return "local" }
func (v *termViewer) Slot() int           { return v.slot }
func (v *termViewer) SetSlot(s int)       { v.slot = s }
func (v *termViewer) LockPressed() bool   { return v.lock }
func (v *termViewer) Present(text string) { v.frame = text }
func (v *termViewer) Message(text string) { v.notice = text }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(debugview.TickDuration, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	api    *debugview.API
	sched  *tickScheduler
	viewer *termViewer
	cfg    config.Config
	value  *sample

	prevFrame string
	result    debugview.Result

	paused   bool
	showDiff bool
	plain    bool
	width    int

	editing  bool
	input    textinput.Model
	editDone func(string, bool)
}

func newModel(cfg config.Config, plain bool) *model {
	m := &model{
		sched:  newTickScheduler(),
		viewer: &termViewer{},
		cfg:    cfg,
		value:  &sample{},
		plain:  plain,
	}
	m.api = debugview.New(m.sched, debugview.WithPrompter(m))
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	m.input = ti
	return m
}

// Prompt implements the modal text entry boundary on top of a textinput
// overlay. The done callback fires when the overlay closes.
func (m *model) Prompt(v debugview.Viewer, title, label, defaultValue string, done func(string, bool)) {
	m.editing = true
	m.input.SetValue(defaultValue)
	m.input.CursorEnd()
	m.input.Focus()
	m.editDone = done
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		return m, nil
	case tickMsg:
		if !m.paused {
			m.sched.Advance()
			m.value.advance()
			m.prevFrame = m.viewer.frame
			m.result = m.api.Debug(m.viewer, m.value.snapshot(), m.cfg)
		}
		return m, tick()
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(v)
		}
		return m.updateKeys(v)
	}
	return m, nil
}

func (m *model) updateEditor(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.closeEditor(m.input.Value(), true)
		return m, nil
	case "esc":
		m.closeEditor("", false)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *model) closeEditor(value string, ok bool) {
	m.editing = false
	m.input.Blur()
	if m.editDone != nil {
		m.editDone(value, ok)
		m.editDone = nil
	}
}

func (m *model) updateKeys(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := key.String()
	switch k {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "right":
		m.viewer.slot = (m.viewer.slot + 1) % scroll.RingSize
	case "left":
		m.viewer.slot = (m.viewer.slot + scroll.RingSize - 1) % scroll.RingSize
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.viewer.slot = int(k[0] - '1')
	case " ":
		m.viewer.lock = !m.viewer.lock
	case "s":
		m.api.ToggleSelectionMode(m.viewer)
	case "j", "down":
		m.api.MoveCursor(m.viewer, true)
	case "k", "up":
		m.api.MoveCursor(m.viewer, false)
	case "b":
		pos := m.api.SetBookmark(m.viewer, "mark", nil)
		m.viewer.notice = fmt.Sprintf("bookmarked line %d", pos)
	case "g":
		if !m.api.GotoBookmark(m.viewer, "mark") {
			m.viewer.notice = "no bookmark set"
		}
	case "r":
		m.api.ResetScroll(m.viewer)
		m.viewer.notice = "scroll reset"
	case "a":
		m.api.StopAutoScroll(m.viewer)
	case "d":
		m.showDiff = !m.showDiff
	case "e":
		if !m.api.OpenTextEditor(m.viewer, strings.Split(m.viewer.frame, "\n")) {
			m.viewer.notice = "select a line first (s, then j/k)"
		}
	case "c":
		if err := clipboard.WriteAll(style.Strip(m.viewer.frame)); err != nil {
			m.viewer.notice = "clipboard: " + err.Error()
		} else {
			m.viewer.notice = "frame copied"
		}
	case "p":
		m.paused = !m.paused
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("debugview"))
	b.WriteString("\n\n")
	if m.showDiff {
		b.WriteString(renderFrameDiff(style.Strip(m.prevFrame), style.Strip(m.viewer.frame)))
	} else {
		b.WriteString(translate(m.viewer.frame, m.plain))
		b.WriteString("\n")
	}
	if m.editing {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Edit line:"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	return b.String()
}

func (m *model) statusLine() string {
	parts := []string{
		fmt.Sprintf("slot:%d", m.viewer.slot),
		fmt.Sprintf("scroll:%d/%d", m.result.Scroll, m.result.MaxScroll),
	}
	if m.viewer.lock {
		parts = append(parts, "LOCK")
	}
	if m.result.SelectionMode {
		parts = append(parts, fmt.Sprintf("sel:%d", m.result.SelectedLine))
	}
	if m.paused {
		parts = append(parts, "paused")
	}
	if m.viewer.notice != "" {
		parts = append(parts, m.viewer.notice)
	}
	parts = append(parts, "←/→ scroll · space lock · s select · e edit · d diff · c copy · q quit")
	return strings.Join(parts, "  ")
}
