package ui

import (
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// ThemeResultMsg is emitted when the selector closes. Name is empty on cancel.
type ThemeResultMsg struct {
	Name string
}

// ThemeSelector is a simple list to choose a chroma style.
type ThemeSelector struct {
	names    []string
	selected int
	width    int
	height   int
}

func NewThemeSelector(current string) *ThemeSelector {
	// Curated list to keep selection compact while useful.
	curated := []string{
		"dracula", "monokai", "github-dark", "nord", "solarized-dark",
		"solarized-light", "gruvbox", "friendly", "borland", "native",
	}
	avail := styles.Names()
	set := map[string]bool{}
	for _, n := range avail {
		set[n] = true
	}
	var names []string
	for _, n := range curated {
		if set[n] {
			names = append(names, n)
		}
	}
	if len(names) < 5 {
		names = avail
	}
	if current != "" && set[current] && !contains(names, current) {
		names = append(names, current)
	}
	sort.Strings(names)
	s := &ThemeSelector{names: names}
	for i, n := range names {
		if n == current {
			s.selected = i
		}
	}
	return s
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func (s *ThemeSelector) Init() tea.Cmd { return nil }

func (s *ThemeSelector) SetDimensions(w, h int) { s.width, s.height = w, h }

// Selected returns the highlighted style name.
func (s *ThemeSelector) Selected() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[s.selected]
}

func (s *ThemeSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.names)-1 {
				s.selected++
			}
		case "enter":
			name := s.Selected()
			return s, func() tea.Msg { return ThemeResultMsg{Name: name} }
		case "esc", "q":
			return s, func() tea.Msg { return ThemeResultMsg{} }
		}
	}
	return s, nil
}

func (s *ThemeSelector) View() string {
	var b strings.Builder
	start := 0
	end := len(s.names)
	if s.height > 0 && len(s.names) > s.height {
		// Scroll window to keep selection visible
		if s.selected >= s.height {
			start = s.selected - s.height + 1
		}
		end = start + s.height
	}
	for i := start; i < end && i < len(s.names); i++ {
		line := s.names[i]
		if i == s.selected {
			line = PanelItemSelectedStyle.Width(s.width).Render(line)
		} else {
			line = PanelItemStyle.Width(s.width).Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return PanelContentStyle.Width(s.width).Height(s.height).Render(b.String())
}
