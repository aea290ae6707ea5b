package navigation

// PanelKind names exactly one renderable panel.
type PanelKind string

const (
	PanelCloudOverview       PanelKind = "cloud-overview"
	PanelSoftwareOverview    PanelKind = "software-overview"
	PanelMarketplaceOverview PanelKind = "marketplace-overview"
	PanelServers             PanelKind = "servers"
	PanelDomains             PanelKind = "domains"
	PanelWebsites            PanelKind = "websites"
	PanelHosting             PanelKind = "hosting"
	PanelBilling             PanelKind = "billing"
	PanelSettings            PanelKind = "settings"
	PanelProjects            PanelKind = "projects"
	PanelProducts            PanelKind = "products"
	PanelMeetings            PanelKind = "meetings"
	PanelInvoices            PanelKind = "invoices"
	PanelMarketplace         PanelKind = "marketplace"
	PanelPurchases           PanelKind = "purchases"
	PanelSupport             PanelKind = "support"
	PanelNotFound            PanelKind = "not-found"

	PanelManageServer            PanelKind = "manage-server"
	PanelManageDomain            PanelKind = "manage-domain"
	PanelManageNameservers       PanelKind = "manage-nameservers"
	PanelManageWebsite           PanelKind = "manage-website"
	PanelManageHost              PanelKind = "manage-host"
	PanelProjectDetail           PanelKind = "project-detail"
	PanelTaskDetail              PanelKind = "task-detail"
	PanelProposals               PanelKind = "proposals"
	PanelProductDetail           PanelKind = "product-detail"
	PanelMarketplaceDetail       PanelKind = "marketplace-detail"
	PanelMarketplaceBundles      PanelKind = "marketplace-bundles"
	PanelMarketplaceBundleDetail PanelKind = "marketplace-bundle-detail"
	PanelOrder                   PanelKind = "order"
)

// PanelDescriptor is what the rendering layer receives. Params carries the
// route parameter of detail panels under the name the panel expects.
type PanelDescriptor struct {
	Kind   PanelKind         `json:"kind"`
	App    AppID             `json:"app"`
	NavID  string            `json:"navId"`
	Params map[string]string `json:"params,omitempty"`
}

// IsDetail reports whether the panel is a detail override.
func (p PanelDescriptor) IsDetail() bool {
	for _, dp := range detailPanels {
		if dp.kind == p.Kind {
			return true
		}
	}
	return false
}

type detailPanel struct {
	kind  PanelKind
	param string
}

var detailPanels = map[DetailKind]detailPanel{
	DetailManageServer:            {PanelManageServer, "serviceId"},
	DetailManageDomain:            {PanelManageDomain, "domainId"},
	DetailManageNameservers:       {PanelManageNameservers, ""},
	DetailManageWebsite:           {PanelManageWebsite, "id"},
	DetailManageHost:              {PanelManageHost, "id"},
	DetailProject:                 {PanelProjectDetail, "id"},
	DetailTask:                    {PanelTaskDetail, "id"},
	DetailProposals:               {PanelProposals, "projectId"},
	DetailProduct:                 {PanelProductDetail, "id"},
	DetailMarketplace:             {PanelMarketplaceDetail, "itemId"},
	DetailMarketplaceBundles:      {PanelMarketplaceBundles, ""},
	DetailMarketplaceBundleDetail: {PanelMarketplaceBundleDetail, "bundleId"},
	DetailOrder:                   {PanelOrder, ""},
}

var overviewPanels = map[AppID]PanelKind{
	AppCloud:    PanelCloudOverview,
	AppSoftware: PanelSoftwareOverview,
	AppMarket:   PanelMarketplaceOverview,
}

var navPanels = map[string]PanelKind{
	"server":      PanelServers,
	"domains":     PanelDomains,
	"websites":    PanelWebsites,
	"host":        PanelHosting,
	"billing":     PanelBilling,
	"settings":    PanelSettings,
	"projects":    PanelProjects,
	"products":    PanelProducts,
	"meetings":    PanelMeetings,
	"invoices":    PanelInvoices,
	"marketplace": PanelMarketplace,
	"purchases":   PanelPurchases,
	SupportNavID:  PanelSupport,
}

// SelectPanel maps a resolved state to exactly one panel. A detail override
// always wins over the nav based panel.
func SelectPanel(s State) PanelDescriptor {
	p := PanelDescriptor{App: s.ActiveApp, NavID: s.ActiveNavID}
	if !s.Detail.IsNone() {
		dp, ok := detailPanels[s.Detail.Kind]
		if !ok {
			p.Kind = PanelNotFound
			return p
		}
		p.Kind = dp.kind
		if dp.param != "" {
			p.Params = map[string]string{dp.param: s.Detail.ID}
		}
		return p
	}
	if s.ActiveNavID == "dashboard" {
		if k, ok := overviewPanels[s.ActiveApp]; ok {
			p.Kind = k
			return p
		}
	}
	if k, ok := navPanels[s.ActiveNavID]; ok {
		p.Kind = k
		return p
	}
	p.Kind = PanelNotFound
	return p
}
