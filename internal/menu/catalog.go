// Package menu holds the read-only catalog of sellable items. The catalog
// is built once at startup and never mutated afterwards, so lookups need no
// locking.
package menu

import (
	"fmt"
	"sort"
	"strings"

	"maitred/internal/models"
)

// Catalog maps item codes to menu items.
type Catalog struct {
	items map[string]models.MenuItem
	codes []string // sorted for deterministic listings
}

// New builds a catalog from a slice of items. Item codes are normalized on
// the way in; duplicate or invalid items are rejected.
func New(items []models.MenuItem) (*Catalog, error) {
	c := &Catalog{items: make(map[string]models.MenuItem, len(items))}
	for i := range items {
		item := items[i]
		item.Code = NormalizeCode(item.Code)
		if err := models.ValidateMenuItem(&item); err != nil {
			return nil, fmt.Errorf("menu item %d: %w", i, err)
		}
		if _, exists := c.items[item.Code]; exists {
			return nil, fmt.Errorf("duplicate menu item code %q", item.Code)
		}
		c.items[item.Code] = item
		c.codes = append(c.codes, item.Code)
	}
	sort.Strings(c.codes)
	return c, nil
}

// NormalizeCode canonicalizes a raw item code: surrounding whitespace is
// trimmed and the code is upper-cased, so "app_001" and " APP_001 " resolve
// to the same item.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup resolves an item code. The code is normalized before the lookup.
func (c *Catalog) Lookup(code string) (models.MenuItem, bool) {
	item, ok := c.items[NormalizeCode(code)]
	return item, ok
}

// ListByCategory returns the items in a category. The filter is
// case-insensitive and "all" returns the whole menu. The second return
// value reports whether the category was recognized at all: a recognized
// category with no items yields an empty slice and true, an unknown
// category yields nil and false. Callers must not conflate the two.
func (c *Catalog) ListByCategory(category string) ([]models.MenuItem, bool) {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "all" {
		return c.Items(), true
	}

	cat := models.Category(normalized)
	if !cat.Valid() {
		return nil, false
	}

	items := make([]models.MenuItem, 0)
	for _, code := range c.codes {
		if item := c.items[code]; item.IsInCategory(cat) {
			items = append(items, item)
		}
	}
	return items, true
}

// Items returns every menu item ordered by item code.
func (c *Catalog) Items() []models.MenuItem {
	items := make([]models.MenuItem, 0, len(c.codes))
	for _, code := range c.codes {
		items = append(items, c.items[code])
	}
	return items
}

// Len returns the number of items on the menu.
func (c *Catalog) Len() int {
	return len(c.items)
}
