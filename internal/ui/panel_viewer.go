package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	yaml "sigs.k8s.io/yaml"

	"github.com/sttts/dashnav/pkg/navigation"
)

// PanelViewer shows the selected panel descriptor as highlighted YAML.
type PanelViewer struct {
	theme   string
	content []string
	width   int
	height  int
	offset  int
}

func NewPanelViewer(theme string) *PanelViewer {
	return &PanelViewer{theme: theme}
}

func (v *PanelViewer) Init() tea.Cmd { return nil }

func (v *PanelViewer) SetDimensions(w, h int) {
	v.width, v.height = w, h
	v.clampOffset()
}

// SetTheme switches the chroma style. The next SetPanel re-highlights.
func (v *PanelViewer) SetTheme(theme string) { v.theme = theme }

func (v *PanelViewer) Theme() string { return v.theme }

// SetPanel renders p and resets scrolling.
func (v *PanelViewer) SetPanel(p navigation.PanelDescriptor) {
	v.content = strings.Split(strings.TrimRight(RenderPanel(p, v.theme), "\n"), "\n")
	v.offset = 0
}

// RenderPanel marshals p to YAML and highlights it with the given chroma
// style. Highlighting failures fall back to the plain YAML.
func RenderPanel(p navigation.PanelDescriptor, theme string) string {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err.Error()
	}
	var b strings.Builder
	if err := quick.Highlight(&b, string(data), "yaml", "terminal256", theme); err != nil {
		return string(data)
	}
	return b.String()
}

func (v *PanelViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "pgup":
			v.offset = max(0, v.offset-(v.height-1))
		case "pgdown":
			v.offset += max(1, v.height-1)
		case "home":
			v.offset = 0
		case "end":
			v.offset = len(v.content)
		}
		v.clampOffset()
	}
	return v, nil
}

func (v *PanelViewer) clampOffset() {
	v.offset = max(0, min(v.offset, len(v.content)-v.height))
}

func (v *PanelViewer) View() string {
	if v.height <= 0 || v.width <= 0 {
		return ""
	}
	end := min(len(v.content), v.offset+v.height)
	lines := make([]string, 0, v.height)
	for _, ln := range v.content[v.offset:end] {
		lines = append(lines, ansi.Truncate(ln, v.width, "…"))
	}
	return PanelContentStyle.Width(v.width).Height(v.height).Render(strings.Join(lines, "\n"))
}
