// Package shell owns the dashboard's resolution state and turns location
// changes and user intents into committed states.
package shell

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sttts/dashnav/pkg/navigation"
	"github.com/sttts/dashnav/pkg/preferences"
)

// Location is the browser/router collaborator. Push may synchronously call
// back into the controller, e.g. with OnURLChanged.
type Location interface {
	Path() string
	Push(path string)
}

type Options struct {
	// Resolver defaults to the embedded catalog and default routes.
	Resolver *navigation.Resolver
	// Preferences defaults to an in-memory store.
	Preferences *preferences.Preferences
	Location    Location
	Logger      logr.Logger
}

// Controller is not safe for concurrent use. It expects a single logical
// thread, and events that arrive while one is processed are queued and run
// afterwards in arrival order.
type Controller struct {
	resolver *navigation.Resolver
	prefs    *preferences.Preferences
	loc      Location
	log      logr.Logger

	state navigation.State

	busy    bool
	pending []func()

	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(navigation.State)
}

// New seeds the active app from preferences and reconciles it with the
// current location.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Location == nil {
		return nil, fmt.Errorf("location is required")
	}
	c := &Controller{
		resolver: opts.Resolver,
		prefs:    opts.Preferences,
		loc:      opts.Location,
		log:      opts.Logger,
	}
	if c.resolver == nil {
		c.resolver = navigation.NewDefaultResolver()
	}
	if c.prefs == nil {
		c.prefs = preferences.New(preferences.NewMemoryStore())
	}
	if c.log.GetSink() == nil {
		c.log = logr.Discard()
	}

	app := c.prefs.StartupApp(ctx)
	start := navigation.State{ActiveApp: app, ActiveNavID: c.resolver.Catalog().First(app).ID}
	c.state = c.resolver.Resolve(start, c.loc.Path(), navigation.URLChanged())
	c.log.V(1).Info("shell started", "app", app, "path", c.loc.Path(), "state", c.state.String())
	return c, nil
}

// State returns a snapshot of the current state.
func (c *Controller) State() navigation.State { return c.state }

// Panel returns the panel for the current state.
func (c *Controller) Panel() navigation.PanelDescriptor { return navigation.SelectPanel(c.state) }

func (c *Controller) Resolver() *navigation.Resolver { return c.resolver }

// Subscribe registers fn to be called after every commit that changes the
// state. Listeners run in subscription order. The returned func removes fn.
func (c *Controller) Subscribe(fn func(navigation.State)) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// OnURLChanged reconciles the state with path. It never writes the location.
func (c *Controller) OnURLChanged(ctx context.Context, path string) {
	c.dispatch(func() {
		next := c.resolver.Resolve(c.state, path, navigation.URLChanged())
		c.commit(next, navigation.EventURLChanged)
	})
}

// OnUserSelectNav selects navID in the active app and writes its path.
func (c *Controller) OnUserSelectNav(ctx context.Context, navID string) {
	c.dispatch(func() {
		next := c.resolver.Resolve(c.state, c.loc.Path(), navigation.SelectNav(navID))
		c.writeURL(navigation.NavPath(next.ActiveNavID))
		c.commit(next, navigation.EventSelectNav)
	})
}

// OnUserSelectApp switches apps, leaving any open detail view. The choice
// is persisted as the last active app before the location is written.
func (c *Controller) OnUserSelectApp(ctx context.Context, app navigation.AppID) error {
	if !app.Valid() {
		return fmt.Errorf("unknown app %q", app)
	}
	c.dispatch(func() {
		next := c.resolver.Resolve(c.state, c.loc.Path(), navigation.SelectApp(app))
		if err := c.prefs.SetLastActiveApp(ctx, next.ActiveApp); err != nil {
			c.log.Error(err, "failed to persist last active app", "app", next.ActiveApp)
		}
		c.writeURL(navigation.Root)
		c.commit(next, navigation.EventSelectApp)
	})
	return nil
}

// OnUserOpenDetail opens d and writes the detail route's path.
func (c *Controller) OnUserOpenDetail(ctx context.Context, d navigation.Detail) error {
	path, err := c.resolver.Routes().DetailPath(d)
	if err != nil {
		return err
	}
	c.dispatch(func() {
		next := c.resolver.Resolve(c.state, c.loc.Path(), navigation.OpenDetail(d))
		c.writeURL(path)
		c.commit(next, navigation.EventOpenDetail)
	})
	return nil
}

// OnUserNavigateUp leaves a detail view for the nav item it is anchored
// under. Outside a detail view it does nothing.
func (c *Controller) OnUserNavigateUp(ctx context.Context) {
	c.dispatch(func() {
		if c.state.Detail.IsNone() {
			return
		}
		path, err := c.resolver.Routes().DetailPath(c.state.Detail)
		if err != nil {
			path = c.loc.Path()
		}
		next := c.resolver.Resolve(c.state, c.resolver.Routes().Parent(path), navigation.URLChanged())
		c.writeURL(navigation.NavPath(next.ActiveNavID))
		c.commit(next, navigation.EventSelectNav)
	})
}

// SetDefaultApp persists app as the default. The active state is untouched.
func (c *Controller) SetDefaultApp(ctx context.Context, app navigation.AppID) error {
	if !app.Valid() {
		return fmt.Errorf("unknown app %q", app)
	}
	return c.prefs.SetDefaultApp(ctx, app)
}

// dispatch runs fn now, or queues it when another event is in flight.
func (c *Controller) dispatch(fn func()) {
	if c.busy {
		c.pending = append(c.pending, fn)
		return
	}
	c.busy = true
	defer func() { c.busy = false }()
	fn()
	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		next()
	}
}

func (c *Controller) writeURL(path string) {
	if navigation.CleanPath(c.loc.Path()) == path {
		return
	}
	c.loc.Push(path)
}

func (c *Controller) commit(next navigation.State, kind navigation.EventKind) {
	prev := c.state
	c.state = next
	if prev == next {
		return
	}
	c.log.V(2).Info("state committed", "event", kind, "from", prev.String(), "to", next.String())
	for _, l := range c.listeners {
		l.fn(next)
	}
}
