package navigation

import "fmt"

// AppID identifies one of the co-branded apps sharing the dashboard shell.
type AppID string

const (
	AppCloud    AppID = "cloud"
	AppSoftware AppID = "software"
	AppMarket   AppID = "app"

	// DefaultApp is used whenever no valid app preference exists.
	DefaultApp = AppCloud
)

// AllApps lists the apps in tab order.
var AllApps = []AppID{AppCloud, AppSoftware, AppMarket}

// ParseAppID accepts exactly the known app identifiers. Any other value,
// including different casing or surrounding whitespace, is reported as not ok.
func ParseAppID(s string) (AppID, bool) {
	switch a := AppID(s); a {
	case AppCloud, AppSoftware, AppMarket:
		return a, true
	}
	return "", false
}

// Valid reports whether a is one of the known apps.
func (a AppID) Valid() bool {
	_, ok := ParseAppID(string(a))
	return ok
}

func (a AppID) String() string { return string(a) }

// SupportNavID is the nav id of the support screen. It is reachable from
// every app without being part of any catalog.
const SupportNavID = "support"

// NavItem is a sidebar destination of one app.
type NavItem struct {
	ID       string `json:"id"`
	LabelKey string `json:"labelKey"`
	// Title is the untranslated display fallback for LabelKey.
	Title string `json:"title,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// RouteMatch is produced per URL evaluation and never stored.
type RouteMatch struct {
	MatcherID string
	Params    map[string]string
}

// DetailKind tags a Detail. The zero value is DetailNone.
type DetailKind string

const (
	DetailNone                    DetailKind = ""
	DetailManageServer            DetailKind = "manage-server"
	DetailManageDomain            DetailKind = "manage-domain"
	DetailManageNameservers       DetailKind = "manage-nameservers"
	DetailManageWebsite           DetailKind = "manage-website"
	DetailManageHost              DetailKind = "manage-host"
	DetailProject                 DetailKind = "project-detail"
	DetailTask                    DetailKind = "task-detail"
	DetailProposals               DetailKind = "proposals"
	DetailProduct                 DetailKind = "product-detail"
	DetailMarketplace             DetailKind = "marketplace-detail"
	DetailMarketplaceBundles      DetailKind = "marketplace-bundles"
	DetailMarketplaceBundleDetail DetailKind = "marketplace-bundle-detail"
	DetailOrder                   DetailKind = "order"
)

// Detail is a route-parameterized view that supersedes the nav based panel.
// ID carries the single route parameter of the variant (service id, domain
// id, project id, ...) and is empty for parameterless variants.
type Detail struct {
	Kind DetailKind `json:"kind,omitempty"`
	ID   string     `json:"id,omitempty"`
}

// NoDetail is the None variant.
var NoDetail = Detail{}

func ManageServer(serviceID string) Detail { return Detail{Kind: DetailManageServer, ID: serviceID} }
func ManageDomain(domainID string) Detail { return Detail{Kind: DetailManageDomain, ID: domainID} }
func ManageNameservers() Detail { return Detail{Kind: DetailManageNameservers} }
func ManageWebsite(id string) Detail { return Detail{Kind: DetailManageWebsite, ID: id} }
func ManageHost(id string) Detail { return Detail{Kind: DetailManageHost, ID: id} }
func ProjectDetail(id string) Detail { return Detail{Kind: DetailProject, ID: id} }
func TaskDetail(id string) Detail { return Detail{Kind: DetailTask, ID: id} }
func Proposals(projectID string) Detail { return Detail{Kind: DetailProposals, ID: projectID} }
func ProductDetail(id string) Detail { return Detail{Kind: DetailProduct, ID: id} }
func MarketplaceDetail(itemID string) Detail {
	return Detail{Kind: DetailMarketplace, ID: itemID}
}
func MarketplaceBundleList() Detail { return Detail{Kind: DetailMarketplaceBundles} }
func MarketplaceBundleDetail(bundleID string) Detail {
	return Detail{Kind: DetailMarketplaceBundleDetail, ID: bundleID}
}
func Order() Detail { return Detail{Kind: DetailOrder} }

// IsNone reports whether d is the None variant.
func (d Detail) IsNone() bool { return d.Kind == DetailNone }

func (d Detail) String() string {
	if d.IsNone() {
		return "None"
	}
	if d.ID == "" {
		return string(d.Kind)
	}
	return fmt.Sprintf("%s{%s}", d.Kind, d.ID)
}

// State is the resolution tuple. It is the single source of truth consumed
// by rendering and is only produced by the Resolver.
type State struct {
	ActiveApp   AppID  `json:"activeApp"`
	ActiveNavID string `json:"activeNavId"`
	Detail      Detail `json:"detail,omitempty"`
}

func (s State) String() string {
	return fmt.Sprintf("(%s, %s, %s)", s.ActiveApp, s.ActiveNavID, s.Detail)
}

// EventKind distinguishes the inputs of a resolution step.
type EventKind string

const (
	EventURLChanged EventKind = "url-changed"
	EventSelectNav  EventKind = "user-selected-nav"
	EventSelectApp  EventKind = "user-selected-app"
	EventOpenDetail EventKind = "user-opened-detail"
)

// Event is one resolution input. Only the field matching Kind is used.
type Event struct {
	Kind   EventKind
	NavID  string
	App    AppID
	Detail Detail
}

func URLChanged() Event { return Event{Kind: EventURLChanged} }
func SelectNav(navID string) Event { return Event{Kind: EventSelectNav, NavID: navID} }
func SelectApp(app AppID) Event { return Event{Kind: EventSelectApp, App: app} }
func OpenDetail(d Detail) Event { return Event{Kind: EventOpenDetail, Detail: d} }

// IsUser reports whether the event originates from an explicit user choice.
func (e Event) IsUser() bool { return e.Kind != EventURLChanged }
