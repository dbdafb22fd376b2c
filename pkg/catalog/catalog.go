// Package catalog provides the read-only lookup tables that catalog RTIDs
// point into: grid items, zombies and any user-supplied extension tables.
//
// Catalogs are keyed by type name (the alias part of an RTID) and return
// display metadata only. Nothing in levelkit mutates a catalog after it
// has been built.
package catalog

import (
	"path"
	"strings"

	"github.com/matzehuels/levelkit/pkg/rtid"
)

// Catalog is the lookup capability reference checks rely on.
type Catalog interface {
	// IsValid reports whether alias names an entry.
	IsValid(alias string) bool
	// Name returns the display name for alias, or alias itself if unknown.
	Name(alias string) string
	// IconPath returns the icon asset path for alias, if it has one.
	IconPath(alias string) (string, bool)
}

// Searchable is implemented by catalogs that can enumerate their items.
type Searchable interface {
	Search(query string) []Item
}

// Category groups catalog items for pickers.
type Category string

// Item is one catalog entry.
type Item struct {
	TypeName string   `toml:"type_name"`
	Name     string   `toml:"name"`
	Category Category `toml:"category"`
	Icon     string   `toml:"icon"`
}

// Static is an in-memory catalog built once from a fixed item list.
type Static struct {
	iconDir string
	items   []Item
	index   map[string]int
}

// NewStatic builds a catalog from items. Icons are resolved relative to
// iconDir. When a type name repeats, the first item wins.
func NewStatic(iconDir string, items []Item) *Static {
	s := &Static{
		iconDir: iconDir,
		items:   make([]Item, 0, len(items)),
		index:   make(map[string]int, len(items)),
	}
	for _, it := range items {
		if it.TypeName == "" {
			continue
		}
		if _, dup := s.index[it.TypeName]; dup {
			continue
		}
		s.index[it.TypeName] = len(s.items)
		s.items = append(s.items, it)
	}
	return s
}

// Items returns all entries in declaration order.
func (s *Static) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Lookup returns the item for alias.
func (s *Static) Lookup(alias string) (Item, bool) {
	i, ok := s.index[alias]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// IsValid implements Catalog.
func (s *Static) IsValid(alias string) bool {
	_, ok := s.index[alias]
	return ok
}

// Name implements Catalog.
func (s *Static) Name(alias string) string {
	if it, ok := s.Lookup(alias); ok && it.Name != "" {
		return it.Name
	}
	return alias
}

// IconPath implements Catalog.
func (s *Static) IconPath(alias string) (string, bool) {
	it, ok := s.Lookup(alias)
	if !ok || it.Icon == "" {
		return "", false
	}
	return path.Join(s.iconDir, it.Icon), true
}

// ByCategory returns the items in category c.
func (s *Static) ByCategory(c Category) []Item {
	var out []Item
	for _, it := range s.items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}

// Search matches query case-insensitively against display and type names.
// A blank query returns every item.
func (s *Static) Search(query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Items()
	}
	var out []Item
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.TypeName), q) {
			out = append(out, it)
		}
	}
	return out
}

var _ Catalog = (*Static)(nil)

// Chain consults catalogs in order: an alias is valid if any catalog knows
// it, and metadata comes from the first catalog that does.
type Chain []Catalog

// IsValid implements Catalog.
func (c Chain) IsValid(alias string) bool {
	for _, cat := range c {
		if cat.IsValid(alias) {
			return true
		}
	}
	return false
}

// Name implements Catalog.
func (c Chain) Name(alias string) string {
	for _, cat := range c {
		if cat.IsValid(alias) {
			return cat.Name(alias)
		}
	}
	return alias
}

// IconPath implements Catalog.
func (c Chain) IconPath(alias string) (string, bool) {
	for _, cat := range c {
		if cat.IsValid(alias) {
			return cat.IconPath(alias)
		}
	}
	return "", false
}

// Search implements Searchable over the members that support it. An item
// shadowed by an earlier catalog is reported once.
func (c Chain) Search(query string) []Item {
	seen := make(map[string]bool)
	var out []Item
	for _, cat := range c {
		s, ok := cat.(Searchable)
		if !ok {
			continue
		}
		for _, it := range s.Search(query) {
			if !seen[it.TypeName] {
				seen[it.TypeName] = true
				out = append(out, it)
			}
		}
	}
	return out
}

var _ Catalog = Chain(nil)

// Set maps RTID sources to the catalog that answers for them.
type Set map[rtid.Source]Catalog

// Defaults returns the built-in catalogs.
func Defaults() Set {
	return Set{
		rtid.GridItemTypes: GridItems(),
		rtid.ZombieTypes:   Zombies(),
	}
}

// Extend layers cat over the existing catalog for source, if any.
func (s Set) Extend(source rtid.Source, cat Catalog) {
	if prev, ok := s[source]; ok {
		s[source] = Chain{cat, prev}
		return
	}
	s[source] = cat
}
