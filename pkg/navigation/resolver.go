package navigation

// Resolver turns (current state, url, event) into the next state in a
// single pass. It is pure: no I/O, no hidden state, safe to call repeatedly
// with the same inputs.
//
// Rules, first applicable wins:
//  1. literal routes (order, support, manage-nameservers) on exact match
//  2. detail routes, most specific first; products force the software app
//  3. plain catalog routes by last path segment, plus "support"
//  4. explicit user events, which ignore the url entirely
//  5. repair of a nav id that is invalid for the active app
//
// A url that matches none of 1-3 lands on the root entry of the active app.
type Resolver struct {
	catalog *Catalog
	routes  *RouteSet
}

// NewResolver returns a Resolver over catalog and routes.
func NewResolver(catalog *Catalog, routes *RouteSet) *Resolver {
	return &Resolver{catalog: catalog, routes: routes}
}

// NewDefaultResolver uses the embedded catalog and the default route table.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultCatalog(), MustRouteSet(DefaultRoutes()))
}

func (r *Resolver) Catalog() *Catalog { return r.catalog }
func (r *Resolver) Routes() *RouteSet { return r.routes }

// Resolve computes the next state.
func (r *Resolver) Resolve(cur State, url string, ev Event) State {
	next := cur
	if !next.ActiveApp.Valid() {
		next.ActiveApp = DefaultApp
	}
	switch ev.Kind {
	case EventSelectNav:
		next.ActiveNavID = ev.NavID
		next.Detail = NoDetail
	case EventSelectApp:
		if ev.App.Valid() {
			next.ActiveApp = ev.App
		}
		next.ActiveNavID = r.catalog.First(next.ActiveApp).ID
		next.Detail = NoDetail
	case EventOpenDetail:
		next = r.applyDetail(next, ev.Detail)
	default:
		next = r.fromURL(next, url)
	}
	return r.Validate(next)
}

// Validate applies the repair rule only: a nav id that is neither "support"
// nor an entry of the active app becomes the app's root entry.
func (r *Resolver) Validate(s State) State {
	if !s.ActiveApp.Valid() {
		s.ActiveApp = DefaultApp
	}
	if s.ActiveNavID != SupportNavID && !r.catalog.IsValid(s.ActiveApp, s.ActiveNavID) {
		s.ActiveNavID = r.catalog.First(s.ActiveApp).ID
	}
	return s
}

func (r *Resolver) fromURL(s State, url string) State {
	path := CleanPath(url)
	if route, m, ok := r.routes.Lookup(path); ok {
		return r.applyRoute(s, route, m)
	}

	last := LastSegment(path)
	switch {
	case last == SupportNavID:
		s.ActiveNavID = SupportNavID
		s.Detail = NoDetail
		return s
	case last != "" && r.catalog.IsValid(s.ActiveApp, last):
		s.ActiveNavID = last
		s.Detail = NoDetail
		return s
	}

	s.ActiveNavID = r.catalog.First(s.ActiveApp).ID
	s.Detail = NoDetail
	return s
}

func (r *Resolver) applyRoute(s State, route Route, m RouteMatch) State {
	s.ActiveNavID = route.Anchor
	s.Detail = NoDetail
	if route.Detail != DetailNone {
		s.Detail = Detail{Kind: route.Detail}
		if route.Param != "" {
			s.Detail.ID = m.Params[route.Param]
		}
	}
	if route.ForceApp != "" {
		s.ActiveApp = route.ForceApp
	}
	return s
}

func (r *Resolver) applyDetail(s State, d Detail) State {
	if d.IsNone() {
		s.Detail = NoDetail
		return s
	}
	route, ok := r.routes.RouteForDetail(d.Kind)
	if !ok {
		return s
	}
	// A detail without a path could not be restored from the location.
	if _, err := r.routes.DetailPath(d); err != nil {
		return s
	}
	s.Detail = d
	s.ActiveNavID = route.Anchor
	if route.ForceApp != "" {
		s.ActiveApp = route.ForceApp
	}
	return s
}
