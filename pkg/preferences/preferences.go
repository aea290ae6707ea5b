// Package preferences persists the user's default and last active dashboard
// app.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sttts/dashnav/pkg/navigation"
)

const (
	KeyDefaultApp    = "dashboard:default"
	KeyLastActiveApp = "dashboard:current"
)

// AppPreferences is the validated view of the stored keys. Absent or corrupt
// values are empty.
type AppPreferences struct {
	DefaultApp    navigation.AppID
	LastActiveApp navigation.AppID
}

// Preferences reads and writes app preferences through a Store.
type Preferences struct {
	store    Store
	log      logr.Logger
	fallback navigation.AppID
}

type Option func(*Preferences)

// WithLogger sets the logger used for discarded values.
func WithLogger(l logr.Logger) Option { return func(p *Preferences) { p.log = l } }

// WithFallbackApp overrides the app used when nothing valid is stored.
func WithFallbackApp(app navigation.AppID) Option {
	return func(p *Preferences) {
		if app.Valid() {
			p.fallback = app
		}
	}
}

func New(store Store, opts ...Option) *Preferences {
	p := &Preferences{store: store, log: logr.Discard(), fallback: navigation.DefaultApp}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Preferences) Store() Store { return p.store }

// Load reads both keys independently. A key that fails to read is left
// empty and its error joined into the result; corrupt values are dropped
// and logged.
func (p *Preferences) Load(ctx context.Context) (AppPreferences, error) {
	var out AppPreferences
	var errDefault, errLast error
	out.DefaultApp, errDefault = p.read(ctx, KeyDefaultApp)
	out.LastActiveApp, errLast = p.read(ctx, KeyLastActiveApp)
	return out, errors.Join(errDefault, errLast)
}

func (p *Preferences) read(ctx context.Context, key string) (navigation.AppID, error) {
	raw, ok, err := p.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read preference %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}
	app, valid := navigation.ParseAppID(raw)
	if !valid {
		p.log.V(1).Info("discarding invalid preference", "key", key, "value", raw)
		return "", nil
	}
	return app, nil
}

// StartupApp picks the app to open with: last active, then default, then
// the fallback app. Store errors are logged and treated as absent values.
func (p *Preferences) StartupApp(ctx context.Context) navigation.AppID {
	prefs, err := p.Load(ctx)
	if err != nil {
		p.log.Error(err, "failed to load preferences")
	}
	switch {
	case prefs.LastActiveApp.Valid():
		return prefs.LastActiveApp
	case prefs.DefaultApp.Valid():
		return prefs.DefaultApp
	default:
		return p.fallback
	}
}

func (p *Preferences) SetLastActiveApp(ctx context.Context, app navigation.AppID) error {
	return p.write(ctx, KeyLastActiveApp, app)
}

func (p *Preferences) SetDefaultApp(ctx context.Context, app navigation.AppID) error {
	return p.write(ctx, KeyDefaultApp, app)
}

func (p *Preferences) write(ctx context.Context, key string, app navigation.AppID) error {
	if !app.Valid() {
		return fmt.Errorf("invalid app %q", app)
	}
	if err := p.store.Set(ctx, key, string(app)); err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}
