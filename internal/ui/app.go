package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/go-logr/logr"

	"github.com/sttts/dashnav/internal/history"
	"github.com/sttts/dashnav/internal/shell"
	"github.com/sttts/dashnav/pkg/appconfig"
	"github.com/sttts/dashnav/pkg/navigation"
	"github.com/sttts/dashnav/pkg/preferences"
)

const sidebarWidth = 24

// Options configure NewApp.
type Options struct {
	Config     *appconfig.Config
	Store      preferences.Store
	StartPath  string
	Logger     logr.Logger
	// SaveConfig persists theme changes. nil disables saving.
	SaveConfig func(*appconfig.Config) error
}

// App is the dashboard shell: app tabs, a location bar, the sidebar of the
// active app and the selected panel.
type App struct {
	ctx  context.Context
	ctrl *shell.Controller
	hist *history.History
	cfg  *appconfig.Config
	log  logr.Logger
	save func(*appconfig.Config) error

	width  int
	height int

	// sidebar selection, independent of the committed nav id until enter
	cursor int

	viewer      *PanelViewer
	gotoInput   *GotoInput
	gotoActive  bool
	themes      *ThemeSelector
	themeActive bool

	toastActive bool
	toastText   string
	toastUntil  time.Time
	toastLogger *ToastLogger
	pendingCmds []tea.Cmd
}

// NewApp builds the controller over an in-process history and wires the
// history's traversal events back into it.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = appconfig.Default()
	}
	start := opts.StartPath
	if start == "" {
		start = cfg.Shell.StartPath
	}
	store := opts.Store
	if store == nil {
		store = preferences.NewMemoryStore()
	}

	a := &App{
		ctx:       ctx,
		hist:      history.New(start),
		cfg:       cfg,
		save:      opts.SaveConfig,
		viewer:    NewPanelViewer(cfg.Viewer.Theme),
		gotoInput: NewGotoInput(),
	}
	a.toastLogger = NewToastLogger(a, 2*time.Second)
	a.log = a.toastLogger.Logger(opts.Logger)

	fallback, _ := navigation.ParseAppID(cfg.Shell.FallbackApp)
	prefs := preferences.New(store,
		preferences.WithLogger(a.log.WithName("preferences")),
		preferences.WithFallbackApp(fallback),
	)
	ctrl, err := shell.New(ctx, shell.Options{
		Preferences: prefs,
		Location:    a.hist,
		Logger:      a.log.WithName("shell"),
	})
	if err != nil {
		return nil, err
	}
	a.ctrl = ctrl
	a.hist.SetListener(func(path string) { a.ctrl.OnURLChanged(a.ctx, path) })
	a.ctrl.Subscribe(func(navigation.State) { a.syncState() })
	a.syncState()
	return a, nil
}

// Controller exposes the shell controller, mainly for tests and the CLI.
func (a *App) Controller() *shell.Controller { return a.ctrl }

// History exposes the location history.
func (a *App) History() *history.History { return a.hist }

func (a *App) Init() tea.Cmd {
	return a.drainCmds()
}

// enqueueCmd appends a command to be executed on the next Update cycle.
func (a *App) enqueueCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	a.pendingCmds = append(a.pendingCmds, cmd)
}

func (a *App) drainCmds() tea.Cmd {
	if len(a.pendingCmds) == 0 {
		return nil
	}
	cmds := a.pendingCmds
	a.pendingCmds = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// items returns the sidebar entries of the active app, support last.
func (a *App) items() []navigation.NavItem {
	s := a.ctrl.State()
	out := a.ctrl.Resolver().Catalog().Items(s.ActiveApp)
	return append(out, navigation.NavItem{ID: navigation.SupportNavID, LabelKey: "nav.support", Title: "Support", Icon: "lifebuoy"})
}

// syncState moves the sidebar cursor to the committed nav id and re-renders
// the panel.
func (a *App) syncState() {
	s := a.ctrl.State()
	for i, it := range a.items() {
		if it.ID == s.ActiveNavID {
			a.cursor = i
		}
	}
	a.viewer.SetPanel(a.ctrl.Panel())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	pending := a.drainCmds()
	switch {
	case pending == nil:
		return a, cmd
	case cmd == nil:
		return a, pending
	}
	return a, tea.Batch(cmd, pending)
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return nil
	case showToastMsg, toastTickMsg:
		return a.handleToast(msg)
	case GotoResultMsg:
		a.gotoActive = false
		if msg.Confirm {
			a.gotoPath(msg.Path)
		}
		return nil
	case ThemeResultMsg:
		a.themeActive = false
		if msg.Name != "" {
			return a.applyTheme(msg.Name)
		}
		return nil
	case tea.KeyMsg:
		if a.gotoActive {
			_, cmd := a.gotoInput.Update(msg)
			return cmd
		}
		if a.themeActive {
			_, cmd := a.themes.Update(msg)
			return cmd
		}
		return a.handleKey(msg)
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "f10", "ctrl+c":
		return tea.Quit
	case "tab":
		return a.switchApp(1)
	case "shift+tab":
		return a.switchApp(-1)
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.items())-1 {
			a.cursor++
		}
	case "enter":
		items := a.items()
		if a.cursor >= 0 && a.cursor < len(items) {
			a.ctrl.OnUserSelectNav(a.ctx, items[a.cursor].ID)
		}
	case "[", "alt+left":
		a.hist.Back()
	case "]", "alt+right":
		a.hist.Forward()
	case "u", "backspace":
		a.ctrl.OnUserNavigateUp(a.ctx)
	case "g":
		a.gotoInput.Reset(a.hist.Path())
		a.gotoActive = true
	case "d":
		app := a.ctrl.State().ActiveApp
		if err := a.ctrl.SetDefaultApp(a.ctx, app); err != nil {
			return a.toastLogger.Errorf("Setting default app failed: %v", err)
		}
		return a.ShowToast(fmt.Sprintf("Default app: %s", BrandName(app)), 3*time.Second)
	case "t":
		a.themes = NewThemeSelector(a.viewer.Theme())
		a.themeActive = true
	default:
		_, cmd := a.viewer.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) switchApp(delta int) tea.Cmd {
	cur := a.ctrl.State().ActiveApp
	idx := 0
	for i, app := range navigation.AllApps {
		if app == cur {
			idx = i
		}
	}
	n := len(navigation.AllApps)
	next := navigation.AllApps[((idx+delta)%n+n)%n]
	if err := a.ctrl.OnUserSelectApp(a.ctx, next); err != nil {
		return a.toastLogger.Errorf("Switching app failed: %v", err)
	}
	return nil
}

// gotoPath behaves like typing into a browser's address bar: the location
// changes first, then the shell reconciles with it.
func (a *App) gotoPath(path string) {
	a.hist.Push(path)
	a.ctrl.OnURLChanged(a.ctx, a.hist.Path())
}

func (a *App) applyTheme(name string) tea.Cmd {
	a.viewer.SetTheme(name)
	a.viewer.SetPanel(a.ctrl.Panel())
	a.cfg.Viewer.Theme = name
	if a.save == nil {
		return nil
	}
	if err := a.save(a.cfg); err != nil {
		return a.toastLogger.Errorf("Saving config failed: %v", err)
	}
	return nil
}

// View renders the application.
func (a *App) View() (string, *tea.Cursor) {
	if a.width <= 0 || a.height <= 0 {
		return "", nil
	}
	tabs := a.renderTabs()
	urlBar := a.renderURLBar()
	keys := a.renderFunctionKeys()

	reserved := lipgloss.Height(tabs) + lipgloss.Height(urlBar) + 1
	if a.toastActive {
		reserved++
	}
	bodyHeight := max(1, a.height-reserved)

	body := a.renderBody(bodyHeight)
	lines := []string{tabs, urlBar, body}
	if a.toastActive {
		msg := ansi.Truncate(a.toastText, a.width, "…")
		lines = append(lines, ToastStyle.Width(a.width).Render(msg))
	}
	lines = append(lines, keys)
	return lipgloss.JoinVertical(lipgloss.Left, lines...), nil
}

func (a *App) renderTabs() string {
	active := a.ctrl.State().ActiveApp
	parts := make([]string, 0, len(navigation.AllApps))
	for _, app := range navigation.AllApps {
		parts = append(parts, TabStyle(app, app == active).Render(BrandName(app)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return FunctionKeyBarStyle.Width(a.width).Render(row)
}

func (a *App) renderURLBar() string {
	label := URLBarLabelStyle.Render("URL")
	w := max(1, a.width-lipgloss.Width(label)-1)
	if a.gotoActive {
		a.gotoInput.SetWidth(w)
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", a.gotoInput.View())
	}
	path := ansi.Truncate(a.hist.Path(), w, "…")
	return lipgloss.JoinHorizontal(lipgloss.Top, label, URLBarStyle.Width(w+1).Render(" "+path))
}

func (a *App) renderBody(height int) string {
	// frames take two rows and two columns each
	inner := max(1, height-2)
	sideW := min(sidebarWidth, max(8, a.width/3))
	panelW := max(1, a.width-sideW-4)

	sidebar := PanelFrameStyle.Render(a.renderSidebar(sideW, inner))

	var content string
	if a.themeActive {
		a.themes.SetDimensions(panelW, inner-1)
		content = lipgloss.JoinVertical(lipgloss.Left, PanelHeaderStyle.Width(panelW).Render("Theme"), a.themes.View())
	} else {
		a.viewer.SetDimensions(panelW, inner-1)
		content = lipgloss.JoinVertical(lipgloss.Left, PanelHeaderStyle.Width(panelW).Render(a.panelTitle(panelW)), a.viewer.View())
	}
	panel := PanelFrameStyle.Render(content)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, panel)
}

func (a *App) panelTitle(width int) string {
	s := a.ctrl.State()
	title := s.ActiveNavID
	for _, it := range a.items() {
		if it.ID == s.ActiveNavID && it.Title != "" {
			title = it.Title
		}
	}
	if !s.Detail.IsNone() {
		title += " › " + s.Detail.String()
	}
	return ansi.Truncate(title, width, "…")
}

func (a *App) renderSidebar(width, height int) string {
	s := a.ctrl.State()
	items := a.items()
	lines := make([]string, 0, len(items))
	for i, it := range items {
		label := it.Title
		if label == "" {
			label = it.ID
		}
		marker := "  "
		if it.ID == s.ActiveNavID {
			marker = "▸ "
		}
		text := ansi.Truncate(marker+label, width, "…")
		switch {
		case i == a.cursor:
			lines = append(lines, PanelItemSelectedStyle.Width(width).Render(text))
		case it.ID == s.ActiveNavID:
			lines = append(lines, AccentStyle(s.ActiveApp).Width(width).Render(text))
		default:
			lines = append(lines, PanelItemStyle.Width(width).Render(text))
		}
	}
	return PanelContentStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func (a *App) renderFunctionKeys() string {
	keys := [][2]string{
		{"Tab", "App"}, {"Enter", "Open"}, {"[", "Back"}, {"]", "Fwd"},
		{"u", "Up"}, {"g", "Goto"}, {"d", "Default"}, {"t", "Theme"}, {"q", "Quit"},
	}
	if a.gotoActive {
		keys = [][2]string{{"Enter", "Go"}, {"Esc", "Cancel"}, {"^U", "Clear"}}
	} else if a.themeActive {
		keys = [][2]string{{"Enter", "Apply"}, {"Esc", "Cancel"}}
	}
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(FunctionKeyStyle.Render(k[0]))
		b.WriteString(FunctionKeyDescriptionStyle.Render(k[1]))
	}
	return FunctionKeyBarStyle.Width(a.width).Render(ansi.Truncate(b.String(), a.width, ""))
}

// Run starts the terminal shell until the user quits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app, err := NewApp(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(), // Handle signals ourselves
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running shell: %w", err)
	}
	return nil
}
