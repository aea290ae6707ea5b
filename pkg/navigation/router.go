package navigation

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Root is the mount point of the dashboard and the root path of every app.
const Root = "/dashboard"

// RouteKind separates the exact literal routes checked first from the
// parameterized detail routes.
type RouteKind int

const (
	RouteLiteral RouteKind = iota
	RouteDetail
)

// Route declares one URL pattern, e.g. "/dashboard/projects/:projectId/proposals".
type Route struct {
	ID      string
	Pattern string
	Kind    RouteKind
	// Anchor is the nav id highlighted while the route is shown.
	Anchor string
	// Detail is the variant produced by a match. Param names the pattern
	// parameter that becomes Detail.ID.
	Detail DetailKind
	Param  string
	// ForceApp, when set, switches the active app on match.
	ForceApp AppID

	segs []string
}

// RouteSet is a fixed, priority-ordered list of routes. It parses and formats
// paths; it never changes resolution state.
type RouteSet struct {
	routes   []Route
	byID     map[string]int
	byDetail map[DetailKind]int
}

// DefaultRoutes returns the dashboard route table in declaration order.
// Literal segments are declared before parameters of the same length so the
// declaration-order tie-break prefers them.
func DefaultRoutes() []Route {
	return []Route{
		{ID: "order", Pattern: Root + "/order", Kind: RouteLiteral, Anchor: "server", Detail: DetailOrder},
		{ID: "support", Pattern: Root + "/support", Kind: RouteLiteral, Anchor: SupportNavID},
		{ID: "manage-nameservers", Pattern: Root + "/manage-nameservers", Kind: RouteLiteral, Anchor: "domains", Detail: DetailManageNameservers},
		{ID: "manage-server", Pattern: Root + "/manage-server/:serviceId", Kind: RouteDetail, Anchor: "server", Detail: DetailManageServer, Param: "serviceId"},
		{ID: "manage-domain", Pattern: Root + "/manage-domain/:domainId", Kind: RouteDetail, Anchor: "domains", Detail: DetailManageDomain, Param: "domainId"},
		{ID: "manage-website", Pattern: Root + "/manage-website/:id", Kind: RouteDetail, Anchor: "websites", Detail: DetailManageWebsite, Param: "id"},
		{ID: "manage-host", Pattern: Root + "/manage-host/:id", Kind: RouteDetail, Anchor: "host", Detail: DetailManageHost, Param: "id"},
		{ID: "proposals", Pattern: Root + "/projects/:projectId/proposals", Kind: RouteDetail, Anchor: "projects", Detail: DetailProposals, Param: "projectId"},
		{ID: "project", Pattern: Root + "/projects/:id", Kind: RouteDetail, Anchor: "projects", Detail: DetailProject, Param: "id"},
		{ID: "task", Pattern: Root + "/tasks/:id", Kind: RouteDetail, Anchor: "projects", Detail: DetailTask, Param: "id"},
		{ID: "product", Pattern: Root + "/products/:id", Kind: RouteDetail, Anchor: "products", Detail: DetailProduct, Param: "id", ForceApp: AppSoftware},
		{ID: "marketplace-bundle", Pattern: Root + "/marketplace/bundles/:bundleId", Kind: RouteDetail, Anchor: "marketplace", Detail: DetailMarketplaceBundleDetail, Param: "bundleId"},
		{ID: "marketplace-bundles", Pattern: Root + "/marketplace/bundles", Kind: RouteDetail, Anchor: "marketplace", Detail: DetailMarketplaceBundles},
		{ID: "marketplace-item", Pattern: Root + "/marketplace/:itemId", Kind: RouteDetail, Anchor: "marketplace", Detail: DetailMarketplace, Param: "itemId"},
	}
}

// NewRouteSet validates and compiles routes. All problems are reported at
// once.
func NewRouteSet(routes []Route) (*RouteSet, error) {
	rs := &RouteSet{
		routes:   make([]Route, 0, len(routes)),
		byID:     map[string]int{},
		byDetail: map[DetailKind]int{},
	}
	var errs field.ErrorList
	for i, r := range routes {
		fld := field.NewPath("routes").Index(i)
		if r.ID == "" {
			errs = append(errs, field.Required(fld.Child("id"), ""))
		} else if _, dup := rs.byID[r.ID]; dup {
			errs = append(errs, field.Duplicate(fld.Child("id"), r.ID))
		}
		r.segs = splitClean(r.Pattern)
		if len(r.segs) == 0 {
			errs = append(errs, field.Required(fld.Child("pattern"), ""))
		}
		params := sets.New[string]()
		for _, s := range r.segs {
			if strings.HasPrefix(s, ":") {
				if len(s) == 1 {
					errs = append(errs, field.Invalid(fld.Child("pattern"), r.Pattern, "unnamed parameter"))
				}
				params.Insert(s[1:])
			}
		}
		if r.Kind == RouteLiteral && params.Len() > 0 {
			errs = append(errs, field.Invalid(fld.Child("pattern"), r.Pattern, "literal routes cannot have parameters"))
		}
		if r.Param != "" && !params.Has(r.Param) {
			errs = append(errs, field.NotFound(fld.Child("param"), r.Param))
		}
		if r.Anchor == "" {
			errs = append(errs, field.Required(fld.Child("anchor"), ""))
		}
		if r.ForceApp != "" && !r.ForceApp.Valid() {
			errs = append(errs, field.NotSupported(fld.Child("forceApp"), r.ForceApp, appStrings()))
		}
		if r.Detail != DetailNone {
			if _, dup := rs.byDetail[r.Detail]; dup {
				errs = append(errs, field.Duplicate(fld.Child("detail"), r.Detail))
			}
			rs.byDetail[r.Detail] = len(rs.routes)
		}
		rs.byID[r.ID] = len(rs.routes)
		rs.routes = append(rs.routes, r)
	}
	if len(errs) > 0 {
		return nil, errs.ToAggregate()
	}
	return rs, nil
}

// MustRouteSet is NewRouteSet for static tables; an invalid table is a
// programmer error.
func MustRouteSet(routes []Route) *RouteSet {
	rs, err := NewRouteSet(routes)
	if err != nil {
		panic(fmt.Sprintf("invalid route table: %v", err))
	}
	return rs
}

// Route returns the route with the given matcher id.
func (rs *RouteSet) Route(id string) (Route, bool) {
	i, ok := rs.byID[id]
	if !ok {
		return Route{}, false
	}
	return rs.routes[i], true
}

// Routes returns the routes in declaration order.
func (rs *RouteSet) Routes() []Route {
	return append([]Route(nil), rs.routes...)
}

// Match returns every route matching path, most specific first: segment
// count descending, then declaration order. A pattern never matches a path
// with extra trailing segments.
func (rs *RouteSet) Match(path string) []RouteMatch {
	segs := splitClean(path)
	if len(segs) == 0 {
		return nil
	}
	type hit struct {
		idx int
		m   RouteMatch
	}
	var hits []hit
	for i, r := range rs.routes {
		if params, ok := matchSegments(r.segs, segs); ok {
			hits = append(hits, hit{idx: i, m: RouteMatch{MatcherID: r.ID, Params: params}})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		la, lb := len(rs.routes[hits[a].idx].segs), len(rs.routes[hits[b].idx].segs)
		if la != lb {
			return la > lb
		}
		return hits[a].idx < hits[b].idx
	})
	out := make([]RouteMatch, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.m)
	}
	return out
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, false
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// Build renders the route back to a path. A parameter value must survive
// CleanPath as exactly one segment, so Match on the result yields it back.
func (rs *RouteSet) Build(id string, params map[string]string) (string, error) {
	r, ok := rs.Route(id)
	if !ok {
		return "", fmt.Errorf("unknown route %q", id)
	}
	parts := make([]string, 0, len(r.segs))
	for _, s := range r.segs {
		if strings.HasPrefix(s, ":") {
			v := params[s[1:]]
			if !isSegment(v) {
				return "", fmt.Errorf("route %q: invalid value %q for parameter %s", id, v, s[1:])
			}
			s = v
		}
		parts = append(parts, s)
	}
	return "/" + strings.Join(parts, "/"), nil
}

// DetailPath renders the URL of a detail variant.
func (rs *RouteSet) DetailPath(d Detail) (string, error) {
	if d.IsNone() {
		return "", fmt.Errorf("no path for the None detail")
	}
	i, ok := rs.byDetail[d.Kind]
	if !ok {
		return "", fmt.Errorf("no route for detail %s", d.Kind)
	}
	r := rs.routes[i]
	var params map[string]string
	if r.Param != "" {
		params = map[string]string{r.Param: d.ID}
	} else if d.ID != "" {
		return "", fmt.Errorf("detail %s takes no id, got %q", d.Kind, d.ID)
	}
	out, err := rs.Build(r.ID, params)
	if err != nil {
		return "", err
	}
	// e.g. an item id "bundles" would be shadowed by the bundle list route
	if won, m, ok := rs.Lookup(out); !ok || won.ID != r.ID || m.Params[r.Param] != d.ID {
		return "", fmt.Errorf("detail %s: path %s resolves to a different route", d, out)
	}
	return out, nil
}

// Lookup returns the route that wins for path: literal routes before detail
// routes, each in Match order.
func (rs *RouteSet) Lookup(path string) (Route, RouteMatch, bool) {
	matches := rs.Match(path)
	for _, kind := range []RouteKind{RouteLiteral, RouteDetail} {
		for _, m := range matches {
			route, ok := rs.Route(m.MatcherID)
			if ok && route.Kind == kind {
				return route, m, true
			}
		}
	}
	return Route{}, RouteMatch{}, false
}

// RouteForDetail returns the route producing the given variant.
func (rs *RouteSet) RouteForDetail(kind DetailKind) (Route, bool) {
	i, ok := rs.byDetail[kind]
	if !ok {
		return Route{}, false
	}
	return rs.routes[i], true
}

// NavPath renders the plain URL of a nav id. The app root entry maps to Root.
func NavPath(navID string) string {
	if navID == "" || navID == "dashboard" {
		return Root
	}
	return Root + "/" + navID
}

// Parent returns the path one level up from path: detail routes go to the
// nav path of their anchor, nav paths go to Root.
func (rs *RouteSet) Parent(path string) string {
	if r, _, ok := rs.Lookup(path); ok && r.Detail != DetailNone {
		return NavPath(r.Anchor)
	}
	return Root
}

// CleanPath normalizes a URL path: query and fragment are dropped, empty
// segments are removed and a single leading slash is kept.
func CleanPath(raw string) string {
	segs := splitClean(raw)
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

// LastSegment returns the final path segment of raw, or "".
func LastSegment(raw string) string {
	segs := splitClean(raw)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

func splitClean(s string) []string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return filterEmpty(strings.Split(s, "/"))
}

func isSegment(v string) bool {
	segs := splitClean(v)
	return len(segs) == 1 && segs[0] == v
}

func filterEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func appStrings() []string {
	out := make([]string, 0, len(AllApps))
	for _, a := range AllApps {
		out = append(out, string(a))
	}
	return out
}
