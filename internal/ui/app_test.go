package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/sttts/dashnav/internal/testlog"
	"github.com/sttts/dashnav/pkg/appconfig"
	"github.com/sttts/dashnav/pkg/navigation"
	"github.com/sttts/dashnav/pkg/preferences"
)

func newTestApp(t *testing.T, start string, store preferences.Store) *App {
	t.Helper()
	app, err := NewApp(context.Background(), Options{
		Store:     store,
		StartPath: start,
		Logger:    testlog.Logger(t),
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

func send(app *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = app.Update(m)
	}
	return cmd
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t, "/dashboard/billing", nil)
	if got := app.Controller().State(); got != (navigation.State{ActiveApp: navigation.AppCloud, ActiveNavID: "billing"}) {
		t.Fatalf("state %s", got)
	}
	if items := app.items(); items[app.cursor].ID != "billing" {
		t.Fatalf("cursor on %s", items[app.cursor].ID)
	}
	if last := app.items()[len(app.items())-1]; last.ID != navigation.SupportNavID {
		t.Fatalf("support must be the last sidebar entry, got %s", last.ID)
	}
}

func TestApp_SelectNavWithKeys(t *testing.T) {
	app := newTestApp(t, "/dashboard", nil)
	send(app, press(tea.KeyDown, "", 0), press(tea.KeyDown, "", 0))
	want := app.items()[2].ID
	if app.Controller().State().ActiveNavID != "dashboard" {
		t.Fatalf("moving the cursor must not select")
	}
	send(app, press(tea.KeyEnter, "", 0))
	if got := app.Controller().State().ActiveNavID; got != want {
		t.Fatalf("nav=%s want %s", got, want)
	}
	if got := app.History().Path(); got != navigation.NavPath(want) {
		t.Fatalf("url=%s", got)
	}
}

func TestApp_TabSwitchesAppAndPersists(t *testing.T) {
	store := preferences.NewMemoryStore()
	app := newTestApp(t, "/dashboard/manage-server/s1", store)
	send(app, press(tea.KeyTab, "", 0))
	if got := app.Controller().State(); got != (navigation.State{ActiveApp: navigation.AppSoftware, ActiveNavID: "dashboard"}) {
		t.Fatalf("state %s", got)
	}
	if app.History().Path() != "/dashboard" {
		t.Fatalf("url %s", app.History().Path())
	}
	if v, _, _ := store.Get(context.Background(), preferences.KeyLastActiveApp); v != "software" {
		t.Fatalf("persisted %q", v)
	}
	send(app, press(tea.KeyTab, "", tea.ModShift), press(tea.KeyTab, "", tea.ModShift))
	if got := app.Controller().State().ActiveApp; got != navigation.AppMarket {
		t.Fatalf("shift+tab wrapped to %s", got)
	}
}

func TestApp_BackForward(t *testing.T) {
	app := newTestApp(t, "/dashboard", nil)
	send(app, press(tea.KeyDown, "", 0), press(tea.KeyEnter, "", 0))
	first := app.Controller().State().ActiveNavID
	send(app, press(tea.KeyDown, "", 0), press(tea.KeyEnter, "", 0))

	send(app, press('[', "[", 0))
	if got := app.Controller().State().ActiveNavID; got != first {
		t.Fatalf("back: %s want %s", got, first)
	}
	if items := app.items(); items[app.cursor].ID != first {
		t.Fatalf("cursor not synced after back: %s", items[app.cursor].ID)
	}
	send(app, press('[', "[", 0))
	if got := app.Controller().State().ActiveNavID; got != "dashboard" {
		t.Fatalf("back: %s", got)
	}
	send(app, press(']', "]", 0))
	if got := app.Controller().State().ActiveNavID; got != first {
		t.Fatalf("forward: %s", got)
	}
}

func TestApp_GotoAndNavigateUp(t *testing.T) {
	app := newTestApp(t, "/dashboard", nil)
	send(app, press('g', "g", 0))
	if !app.gotoActive {
		t.Fatalf("goto input not active")
	}
	for _, r := range "/products/7" {
		send(app, press(r, string(r), 0))
	}
	cmd := send(app, press(tea.KeyEnter, "", 0))
	if cmd == nil {
		t.Fatalf("expected goto result command")
	}
	send(app, cmd())
	want := navigation.State{ActiveApp: navigation.AppSoftware, ActiveNavID: "products", Detail: navigation.ProductDetail("7")}
	if got := app.Controller().State(); got != want {
		t.Fatalf("goto: %s want %s", got, want)
	}
	if app.History().Path() != "/dashboard/products/7" {
		t.Fatalf("url %s", app.History().Path())
	}

	send(app, press('u', "u", 0))
	if got := app.Controller().State(); got != (navigation.State{ActiveApp: navigation.AppSoftware, ActiveNavID: "products"}) {
		t.Fatalf("up: %s", got)
	}
}

func TestApp_SetDefaultApp(t *testing.T) {
	store := preferences.NewMemoryStore()
	app := newTestApp(t, "/dashboard", store)
	cmd := send(app, press('d', "d", 0))
	if cmd == nil {
		t.Fatalf("expected toast command")
	}
	if v, _, _ := store.Get(context.Background(), preferences.KeyDefaultApp); v != "cloud" {
		t.Fatalf("default %q", v)
	}
	send(app, cmd())
	if !app.toastActive || !strings.Contains(app.toastText, "Cloud") {
		t.Fatalf("toast %q active=%v", app.toastText, app.toastActive)
	}
}

func TestApp_ThemeSelection(t *testing.T) {
	var saved *appconfig.Config
	app, err := NewApp(context.Background(), Options{
		StartPath:  "/dashboard",
		SaveConfig: func(c *appconfig.Config) error { saved = c; return nil },
	})
	if err != nil {
		t.Fatal(err)
	}
	send(app, tea.WindowSizeMsg{Width: 100, Height: 30}, press('t', "t", 0))
	if !app.themeActive {
		t.Fatalf("theme selector not active")
	}
	cmd := send(app, press(tea.KeyDown, "", 0), press(tea.KeyEnter, "", 0))
	if cmd == nil {
		t.Fatalf("expected theme result")
	}
	send(app, cmd())
	if app.themeActive {
		t.Fatalf("theme selector still active")
	}
	if saved == nil || saved.Viewer.Theme == "" || saved.Viewer.Theme != app.viewer.Theme() {
		t.Fatalf("theme not saved: %+v", saved)
	}
}

func TestApp_ViewShowsState(t *testing.T) {
	app := newTestApp(t, "/dashboard/projects/42/proposals", nil)
	view, _ := app.View()
	plain := ansi.Strip(view)
	for _, want := range []string{"Cloud", "Software", "/dashboard/projects/42/proposals", "proposals{42}", "kind: proposals", "projectId"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("view is missing %q:\n%s", want, plain)
		}
	}
	for i, line := range strings.Split(view, "\n") {
		if w := ansi.StringWidth(line); w > 100 {
			t.Fatalf("line %d is %d columns wide", i, w)
		}
	}
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, "/dashboard", nil)
	cmd := send(app, press('q', "q", 0))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

type failingSetStore struct{ *preferences.MemoryStore }

func (failingSetStore) Set(context.Context, string, string) error { return errors.New("read-only") }

func TestApp_PreferenceErrorsBecomeToasts(t *testing.T) {
	app := newTestApp(t, "/dashboard", failingSetStore{preferences.NewMemoryStore()})
	cmd := send(app, press(tea.KeyTab, "", 0))
	if app.Controller().State().ActiveApp != navigation.AppSoftware {
		t.Fatalf("navigation must continue after a failed preference write")
	}
	if cmd == nil {
		t.Fatalf("expected toast command")
	}
	send(app, cmd())
	if !app.toastActive || !strings.Contains(app.toastText, "read-only") {
		t.Fatalf("toast %q", app.toastText)
	}
}

func TestToastLoggerRateLimit(t *testing.T) {
	app := newTestApp(t, "/dashboard", nil)
	now := time.Unix(1000, 0)
	l := NewToastLogger(app, 2*time.Second)
	l.now = func() time.Time { return now }
	if l.Errorf("boom") == nil {
		t.Fatalf("first toast suppressed")
	}
	if l.Errorf("other") != nil {
		t.Fatalf("toast within min interval allowed")
	}
	now = now.Add(3 * time.Second)
	if l.Errorf("boom") != nil {
		t.Fatalf("duplicate within 30s allowed")
	}
	if l.Errorf("other") == nil {
		t.Fatalf("new text after interval suppressed")
	}
}
