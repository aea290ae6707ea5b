package navigation

import (
	_ "embed"
	"fmt"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"
	yaml "sigs.k8s.io/yaml"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog holds the static sidebar entries of every app. It is immutable
// after construction.
type Catalog struct {
	items map[AppID][]NavItem
	ids   map[AppID]sets.Set[string]
}

// NewCatalog validates items and builds a Catalog. Every known app must have
// at least one entry; ids must be unique per app and must not shadow the
// support nav id.
func NewCatalog(items map[AppID][]NavItem) (*Catalog, error) {
	c := &Catalog{
		items: make(map[AppID][]NavItem, len(items)),
		ids:   make(map[AppID]sets.Set[string], len(items)),
	}
	var errs field.ErrorList
	root := field.NewPath("catalog")
	for app := range items {
		if !app.Valid() {
			errs = append(errs, field.NotSupported(root.Key(string(app)), app, appStrings()))
		}
	}
	for _, app := range AllApps {
		fld := root.Key(string(app))
		list, ok := items[app]
		if !ok || len(list) == 0 {
			errs = append(errs, field.Required(fld, "app needs at least one nav item"))
			continue
		}
		ids := sets.New[string]()
		for i, it := range list {
			switch {
			case it.ID == "":
				errs = append(errs, field.Required(fld.Index(i).Child("id"), ""))
			case it.ID == SupportNavID:
				errs = append(errs, field.Forbidden(fld.Index(i).Child("id"), "support is reserved"))
			case ids.Has(it.ID):
				errs = append(errs, field.Duplicate(fld.Index(i).Child("id"), it.ID))
			}
			if it.LabelKey == "" {
				errs = append(errs, field.Required(fld.Index(i).Child("labelKey"), ""))
			}
			ids.Insert(it.ID)
		}
		c.items[app] = append([]NavItem(nil), list...)
		c.ids[app] = ids
	}
	if len(errs) > 0 {
		return nil, errs.ToAggregate()
	}
	return c, nil
}

// LoadCatalog parses a YAML document keyed by app id.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw map[AppID][]NavItem
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(raw)
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// DefaultCatalog returns the embedded catalog. A broken embedded catalog is a
// build defect and panics.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := LoadCatalog(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded nav catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func (c *Catalog) mustApp(app AppID) []NavItem {
	list, ok := c.items[app]
	if !ok {
		panic(fmt.Sprintf("navigation: unknown app %q", app))
	}
	return list
}

// Apps returns the catalog apps in tab order.
func (c *Catalog) Apps() []AppID { return append([]AppID(nil), AllApps...) }

// Items returns the entries of app in sidebar order. Unknown apps panic.
func (c *Catalog) Items(app AppID) []NavItem {
	return append([]NavItem(nil), c.mustApp(app)...)
}

// First returns the root entry of app.
func (c *Catalog) First(app AppID) NavItem { return c.mustApp(app)[0] }

// IsValid reports whether navID is an entry of app. The support id is not
// part of any catalog.
func (c *Catalog) IsValid(app AppID, navID string) bool {
	c.mustApp(app)
	return c.ids[app].Has(navID)
}

// Item returns the entry navID of app.
func (c *Catalog) Item(app AppID, navID string) (NavItem, bool) {
	for _, it := range c.mustApp(app) {
		if it.ID == navID {
			return it, true
		}
	}
	return NavItem{}, false
}

// Index returns the sidebar position of navID in app, or -1.
func (c *Catalog) Index(app AppID, navID string) int {
	for i, it := range c.mustApp(app) {
		if it.ID == navID {
			return i
		}
	}
	return -1
}
