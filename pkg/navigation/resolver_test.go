package navigation

import "testing"

func TestResolve_PlainCatalogRoutes(t *testing.T) {
	r := NewDefaultResolver()
	c := r.Catalog()
	for _, app := range AllApps {
		for _, n := range c.Items(app) {
			for _, start := range []State{
				{ActiveApp: app, ActiveNavID: c.First(app).ID},
				{ActiveApp: app, ActiveNavID: "settings", Detail: ManageHost("x")},
			} {
				got := r.Resolve(start, "/dashboard/"+n.ID, URLChanged())
				want := State{ActiveApp: app, ActiveNavID: n.ID}
				if got != want {
					t.Fatalf("Resolve(%s, /dashboard/%s) = %s want %s", start, n.ID, got, want)
				}
			}
		}
	}
}

func TestResolve_Root(t *testing.T) {
	r := NewDefaultResolver()
	got := r.Resolve(State{ActiveApp: AppSoftware, ActiveNavID: "projects"}, "/dashboard", URLChanged())
	if got != (State{ActiveApp: AppSoftware, ActiveNavID: "dashboard"}) {
		t.Fatalf("unexpected state %s", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := NewDefaultResolver()
	start := State{ActiveApp: AppCloud, ActiveNavID: "server"}
	for _, url := range []string{
		"/dashboard/billing", "/dashboard/products/7", "/dashboard/nope",
		"/dashboard/support", "/dashboard/projects/1/proposals", "/elsewhere",
	} {
		a := r.Resolve(start, url, URLChanged())
		b := r.Resolve(start, url, URLChanged())
		if a != b {
			t.Fatalf("%s: %s != %s", url, a, b)
		}
		if again := r.Resolve(a, url, URLChanged()); again != a {
			t.Fatalf("%s: not a fixed point: %s -> %s", url, a, again)
		}
	}
}

func TestResolve_SpecificityProposals(t *testing.T) {
	r := NewDefaultResolver()
	got := r.Resolve(State{ActiveApp: AppSoftware, ActiveNavID: "dashboard"}, "/dashboard/projects/42/proposals", URLChanged())
	if got.Detail != Proposals("42") {
		t.Fatalf("expected Proposals{42}, got %s", got.Detail)
	}
	if got.ActiveNavID != "projects" {
		t.Fatalf("expected nav projects, got %s", got.ActiveNavID)
	}
}

func TestResolve_ProductForcesSoftware(t *testing.T) {
	r := NewDefaultResolver()
	got := r.Resolve(State{ActiveApp: AppCloud, ActiveNavID: "server"}, "/dashboard/products/7", URLChanged())
	want := State{ActiveApp: AppSoftware, ActiveNavID: "products", Detail: ProductDetail("7")}
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestResolve_OtherDetailsKeepApp(t *testing.T) {
	r := NewDefaultResolver()
	cases := []struct {
		app    AppID
		url    string
		nav    string
		detail Detail
	}{
		{AppCloud, "/dashboard/manage-server/s1", "server", ManageServer("s1")},
		{AppCloud, "/dashboard/manage-domain/d1", "domains", ManageDomain("d1")},
		{AppCloud, "/dashboard/manage-website/w1", "websites", ManageWebsite("w1")},
		{AppCloud, "/dashboard/manage-host/h1", "host", ManageHost("h1")},
		{AppCloud, "/dashboard/manage-nameservers", "domains", ManageNameservers()},
		{AppCloud, "/dashboard/order", "server", Order()},
		{AppSoftware, "/dashboard/projects/p1", "projects", ProjectDetail("p1")},
		{AppSoftware, "/dashboard/tasks/t1", "projects", TaskDetail("t1")},
		{AppMarket, "/dashboard/marketplace/m1", "marketplace", MarketplaceDetail("m1")},
		{AppMarket, "/dashboard/marketplace/bundles", "marketplace", MarketplaceBundleList()},
		{AppMarket, "/dashboard/marketplace/bundles/b1", "marketplace", MarketplaceBundleDetail("b1")},
	}
	for _, tc := range cases {
		got := r.Resolve(State{ActiveApp: tc.app, ActiveNavID: "dashboard"}, tc.url, URLChanged())
		want := State{ActiveApp: tc.app, ActiveNavID: tc.nav, Detail: tc.detail}
		if got != want {
			t.Fatalf("%s: got %s want %s", tc.url, got, want)
		}
	}
}

func TestResolve_DetailAnchorOutsideCatalogIsRepaired(t *testing.T) {
	r := NewDefaultResolver()
	got := r.Resolve(State{ActiveApp: AppSoftware, ActiveNavID: "projects"}, "/dashboard/manage-server/s1", URLChanged())
	if got.ActiveApp != AppSoftware {
		t.Fatalf("detail route must not switch apps, got %s", got.ActiveApp)
	}
	if got.ActiveNavID != "dashboard" {
		t.Fatalf("expected repaired nav id, got %s", got.ActiveNavID)
	}
	if got.Detail != ManageServer("s1") {
		t.Fatalf("detail must survive the repair, got %s", got.Detail)
	}
}

func TestResolve_Support(t *testing.T) {
	r := NewDefaultResolver()
	for _, app := range AllApps {
		got := r.Resolve(State{ActiveApp: app, ActiveNavID: "dashboard", Detail: Order()}, "/dashboard/support", URLChanged())
		want := State{ActiveApp: app, ActiveNavID: SupportNavID}
		if got != want {
			t.Fatalf("got %s want %s", got, want)
		}
	}
}

func TestResolve_FallbackRepair(t *testing.T) {
	r := NewDefaultResolver()
	got := r.Resolve(State{ActiveApp: AppCloud, ActiveNavID: "meetings"}, "/somewhere/else", URLChanged())
	if got.ActiveNavID != r.Catalog().First(AppCloud).ID {
		t.Fatalf("expected %s, got %s", r.Catalog().First(AppCloud).ID, got.ActiveNavID)
	}
	if got.ActiveApp != AppCloud || !got.Detail.IsNone() {
		t.Fatalf("unexpected state %s", got)
	}
}

func TestResolve_UnmatchedURLNeverPanics(t *testing.T) {
	r := NewDefaultResolver()
	for _, url := range []string{
		"", "/", "///", "?", "#x", "/dashboard/products/123/extra", "/dashboard/projects//proposals",
		"/dashboard/%zz", "not a url at all", "/dashboard/marketplace/bundles/",
	} {
		got := r.Resolve(State{ActiveApp: AppMarket, ActiveNavID: "purchases"}, url, URLChanged())
		if got.ActiveNavID != SupportNavID && !r.Catalog().IsValid(got.ActiveApp, got.ActiveNavID) {
			t.Fatalf("%q: invalid state %s", url, got)
		}
	}
}

func TestResolve_UserEventsIgnoreURL(t *testing.T) {
	r := NewDefaultResolver()
	start := State{ActiveApp: AppCloud, ActiveNavID: "server", Detail: ManageServer("s1")}

	got := r.Resolve(start, "/dashboard/manage-server/s1", SelectNav("billing"))
	if got != (State{ActiveApp: AppCloud, ActiveNavID: "billing"}) {
		t.Fatalf("select nav: got %s", got)
	}

	got = r.Resolve(start, "/dashboard/manage-server/s1", SelectApp(AppSoftware))
	if got != (State{ActiveApp: AppSoftware, ActiveNavID: "dashboard"}) {
		t.Fatalf("select app: got %s", got)
	}

	got = r.Resolve(start, "/dashboard/billing", OpenDetail(ProductDetail("9")))
	if got != (State{ActiveApp: AppSoftware, ActiveNavID: "products", Detail: ProductDetail("9")}) {
		t.Fatalf("open detail: got %s", got)
	}
}

func TestResolve_OpenDetailWithoutPathIsIgnored(t *testing.T) {
	r := NewDefaultResolver()
	start := State{ActiveApp: AppCloud, ActiveNavID: "billing"}
	for _, d := range []Detail{
		ManageDomain("a?b"),
		ManageDomain("x#frag"),
		ManageServer(" s1"),
		ManageServer(""),
		{Kind: DetailOrder, ID: "junk"},
		MarketplaceDetail("bundles"),
	} {
		if got := r.Resolve(start, "", OpenDetail(d)); got != start {
			t.Fatalf("OpenDetail(%s): got %s want %s", d, got, start)
		}
	}
}

func TestResolve_SelectInvalidNavIsRepaired(t *testing.T) {
	r := NewDefaultResolver()
	got := r.Resolve(State{ActiveApp: AppCloud, ActiveNavID: "server"}, "", SelectNav("meetings"))
	if got.ActiveNavID != "dashboard" {
		t.Fatalf("expected repair to dashboard, got %s", got.ActiveNavID)
	}
	got = r.Resolve(State{ActiveApp: AppCloud, ActiveNavID: "server"}, "", SelectNav(SupportNavID))
	if got.ActiveNavID != SupportNavID {
		t.Fatalf("support must be selectable, got %s", got.ActiveNavID)
	}
}

func TestResolve_SelectUnknownAppKeepsApp(t *testing.T) {
	r := NewDefaultResolver()
	got := r.Resolve(State{ActiveApp: AppMarket, ActiveNavID: "purchases"}, "", SelectApp("xyz"))
	if got.ActiveApp != AppMarket || got.ActiveNavID != "dashboard" {
		t.Fatalf("unexpected state %s", got)
	}
}

func TestResolve_InvalidCurrentApp(t *testing.T) {
	r := NewDefaultResolver()
	got := r.Resolve(State{}, "/dashboard/billing", URLChanged())
	if got != (State{ActiveApp: DefaultApp, ActiveNavID: "billing"}) {
		t.Fatalf("unexpected state %s", got)
	}
}

func TestValidate(t *testing.T) {
	r := NewDefaultResolver()
	if got := r.Validate(State{ActiveApp: AppSoftware, ActiveNavID: "meetings"}); got.ActiveNavID != "meetings" {
		t.Fatalf("valid nav changed: %s", got)
	}
	if got := r.Validate(State{ActiveApp: AppMarket, ActiveNavID: "meetings"}); got.ActiveNavID != "dashboard" {
		t.Fatalf("invalid nav kept: %s", got)
	}
}
