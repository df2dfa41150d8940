// Package taxonomy maps the aggregation provider's category labels and
// codes onto the internal category enumeration. The table is static
// reference data loaded once at startup; lookups try successively looser
// keys until one hits.
package taxonomy

import (
	"strings"

	"github.com/quillback/spendsort/internal/model"
)

// Entry maps one provider (code, primary, secondary) tuple to an internal
// category.
type Entry struct {
	Code      string         `yaml:"code"`
	Primary   string         `yaml:"primary"`
	Secondary string         `yaml:"secondary"`
	Category  model.Category `yaml:"category"`
}

// Table holds the provider taxonomy plus the flat fallback maps consulted
// when no tuple entry resolves. Immutable after construction.
type Table struct {
	byKey             map[string]model.Category
	primaryFallback   map[string]model.Category
	secondaryFallback map[string]model.Category
	merchantFallback  map[string]model.Category
	version           string
}

// NewTable builds a lookup table from entries plus the flat fallback maps.
// Each entry is indexed under its own key and under every looser key shape
// the resolver probes. A key an entry carries explicitly always beats one
// derived from another entry, and a derived key shared by entries that
// disagree on the category is dropped entirely so the flat fallback maps
// decide it instead.
func NewTable(version string, entries []Entry, primary, secondary, merchants map[string]model.Category) *Table {
	t := &Table{
		version:           version,
		byKey:             make(map[string]model.Category, len(entries)*4),
		primaryFallback:   normalizeKeys(primary),
		secondaryFallback: normalizeKeys(secondary),
		merchantFallback:  normalizeKeys(merchants),
	}

	explicit := make(map[string]bool, len(entries))
	for _, e := range entries {
		code, prim, sec := norm(e.Code), norm(e.Primary), norm(e.Secondary)
		if code == "" && prim == "" && sec == "" {
			continue
		}
		key := lookupKey(code, prim, sec)
		t.byKey[key] = e.Category
		explicit[key] = true
	}

	ambiguous := make(map[string]bool)
	for _, e := range entries {
		code, prim, sec := norm(e.Code), norm(e.Primary), norm(e.Secondary)
		for _, k := range [][3]string{
			{"", prim, sec},
			{code, "", sec},
			{code, prim, ""},
			{"", prim, ""},
			{"", "", sec},
			{code, "", ""},
		} {
			if k[0] == "" && k[1] == "" && k[2] == "" {
				continue
			}
			key := lookupKey(k[0], k[1], k[2])
			if explicit[key] || ambiguous[key] {
				continue
			}
			if existing, ok := t.byKey[key]; ok && existing != e.Category {
				delete(t.byKey, key)
				ambiguous[key] = true
				continue
			}
			t.byKey[key] = e.Category
		}
	}

	return t
}

// Version returns the version string of the loaded taxonomy data.
func (t *Table) Version() string {
	return t.version
}

// Len returns the number of indexed keys, for diagnostics.
func (t *Table) Len() int {
	return len(t.byKey)
}

func (t *Table) lookup(code, primary, secondary string) (model.Category, bool) {
	cat, ok := t.byKey[lookupKey(code, primary, secondary)]
	return cat, ok
}

// Resolve runs the fallback lookup chain for a transaction's provider
// labels, most specific key first:
//
//	code+primary+secondary -> primary+secondary -> code+secondary ->
//	code+primary -> primary -> secondary -> code -> merchant static map
//
// When a primary/secondary probe misses the tuple table, the flat
// primary-label and secondary-label maps are consulted before moving on.
// Returns ok=false only when every lookup fails.
func (t *Table) Resolve(txn model.Transaction) (model.Category, bool) {
	code := norm(txn.ProviderCode)
	primary := norm(txn.ProviderPrimary)
	secondary := norm(txn.ProviderSecondary)

	probes := []struct{ code, primary, secondary string }{
		{code, primary, secondary},
		{"", primary, secondary},
		{code, "", secondary},
		{code, primary, ""},
		{"", primary, ""},
		{"", "", secondary},
		{code, "", ""},
	}

	for _, p := range probes {
		if p.code == "" && p.primary == "" && p.secondary == "" {
			continue
		}
		if cat, ok := t.lookup(p.code, p.primary, p.secondary); ok {
			return cat, true
		}
	}

	if primary != "" {
		if cat, ok := t.primaryFallback[primary]; ok {
			return cat, true
		}
	}
	if secondary != "" {
		if cat, ok := t.secondaryFallback[secondary]; ok {
			return cat, true
		}
	}

	if merchant, ok := txn.MerchantName(); ok {
		if cat, ok := t.merchantFallback[norm(merchant)]; ok {
			return cat, true
		}
	}

	return model.CategoryUncategorized, false
}

func lookupKey(code, primary, secondary string) string {
	return code + "\x1f" + primary + "\x1f" + secondary
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeKeys(in map[string]model.Category) map[string]model.Category {
	out := make(map[string]model.Category, len(in))
	for k, v := range in {
		out[norm(k)] = v
	}
	return out
}
