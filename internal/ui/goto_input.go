package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// GotoResultMsg signals the outcome of the goto input.
type GotoResultMsg struct {
	Path    string
	Confirm bool
}

// GotoInput is a minimal inline text input for a location path, the
// terminal's address bar.
type GotoInput struct {
	width  int
	runes  []rune
	cursor int
	err    string
}

func NewGotoInput() *GotoInput {
	return &GotoInput{}
}

func (m *GotoInput) Init() tea.Cmd  { return nil }
func (m *GotoInput) SetWidth(w int) { m.width = w }
func (m *GotoInput) Value() string  { return string(m.runes) }
func (m *GotoInput) Err() string    { return m.err }

// Reset replaces the input with value and puts the cursor at the end.
func (m *GotoInput) Reset(value string) {
	m.runes = []rune(value)
	m.cursor = len(m.runes)
	m.err = ""
}

func (m *GotoInput) insertRunes(rs []rune) {
	if len(rs) == 0 {
		return
	}
	m.clampCursor()
	before := append([]rune{}, m.runes[:m.cursor]...)
	after := append([]rune{}, m.runes[m.cursor:]...)
	m.runes = append(before, append(rs, after...)...)
	m.cursor += len(rs)
	m.err = ""
}

func (m *GotoInput) deleteBackward() {
	if m.cursor <= 0 || len(m.runes) == 0 {
		return
	}
	m.runes = append(m.runes[:m.cursor-1], m.runes[m.cursor:]...)
	m.cursor--
}

func (m *GotoInput) deleteForward() {
	if m.cursor < 0 || m.cursor >= len(m.runes) {
		return
	}
	m.runes = append(m.runes[:m.cursor], m.runes[m.cursor+1:]...)
}

func (m *GotoInput) clampCursor() {
	if m.cursor < 0 {
		m.cursor = 0
	} else if m.cursor > len(m.runes) {
		m.cursor = len(m.runes)
	}
}

func (m *GotoInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "ctrl+g", "esc":
		return m, func() tea.Msg { return GotoResultMsg{} }
	case "ctrl+h":
		m.deleteBackward()
		return m, nil
	case "ctrl+u":
		m.Reset("")
		return m, nil
	}
	k := key.Key()
	switch k.Code {
	case tea.KeyEnter:
		path := strings.TrimSpace(m.Value())
		if path == "" {
			m.err = "Path is required"
			return m, nil
		}
		if !strings.HasPrefix(path, "/") {
			m.err = "Path must start with /"
			return m, nil
		}
		return m, func() tea.Msg { return GotoResultMsg{Path: path, Confirm: true} }
	case tea.KeyBackspace:
		m.deleteBackward()
		return m, nil
	case tea.KeyDelete:
		m.deleteForward()
		return m, nil
	case tea.KeyLeft:
		m.cursor--
		m.clampCursor()
		return m, nil
	case tea.KeyRight:
		m.cursor++
		m.clampCursor()
		return m, nil
	case tea.KeyHome:
		m.cursor = 0
		return m, nil
	case tea.KeyEnd:
		m.cursor = len(m.runes)
		return m, nil
	}
	if text := k.Text; text != "" {
		if k.Mod&(tea.ModCtrl|tea.ModAlt|tea.ModMeta|tea.ModSuper|tea.ModHyper) == 0 {
			m.insertRunes([]rune(text))
		}
	}
	return m, nil
}

func (m *GotoInput) View() string {
	fieldWidth := max(1, m.width)
	m.clampCursor()
	display := m.runes
	cursor := m.cursor
	// keep the cursor visible by scrolling the text left
	if start := cursor - fieldWidth + 1; start > 0 {
		display = display[start:]
		cursor -= start
	}
	var b strings.Builder
	for i := 0; i < fieldWidth; i++ {
		ch := " "
		if i < len(display) {
			ch = string(display[i])
		}
		if i == cursor {
			b.WriteString(InputCursorStyle.Render(ch))
		} else {
			b.WriteString(InputTextStyle.Render(ch))
		}
	}
	if m.err == "" {
		return b.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, b.String(), InputErrorStyle.Width(fieldWidth).Render(m.err))
}
