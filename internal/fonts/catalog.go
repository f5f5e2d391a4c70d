// Package fonts implements the font catalog and the web font loader: the
// lookup tables for builtin, web, and host-system families, and the
// de-duplicated asynchronous acquisition of web font faces.
package fonts

import (
	"context"
	"sync"

	"github.com/substyle/substyle/internal/application/port"
	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/logging"
)

// Catalog resolves family names and CSS values to font descriptors across
// three sources, in fixed precedence order: builtin, then web, then
// host-system.
type Catalog struct {
	mu     sync.RWMutex
	system []entity.FontDescriptor
}

// NewCatalog creates a catalog with the static builtin and web tables.
// System fonts are absent until RegisterSystemFonts runs.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Resolve returns the descriptor matching the given family name or CSS
// value, or nil when nothing matches. Matching is exact; no fuzzy or
// partial matching. Precedence: builtin > web > system.
func (c *Catalog) Resolve(cssValue string) *entity.FontDescriptor {
	if d := matchIn(builtinFonts, cssValue); d != nil {
		return d
	}
	if d := matchIn(webFonts, cssValue); d != nil {
		return d
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return matchIn(c.system, cssValue)
}

// DisplayName returns the catalog family for the value, or the leading
// family token of the CSS stack when no entry matches.
func (c *Catalog) DisplayName(cssValue string) string {
	if d := c.Resolve(cssValue); d != nil {
		return d.Family
	}
	return entity.LeadingFamily(cssValue)
}

// AvailableWeights returns the declared weights for web fonts and the
// default pair {400, 700} for builtin, system, and unrecognized values.
// The default is a deliberate simplification: the host environment does
// not report per-weight availability.
func (c *Catalog) AvailableWeights(cssValue string) []int {
	d := c.Resolve(cssValue)
	if d == nil || d.Source != entity.FontSourceWeb {
		return append([]int(nil), entity.DefaultWeights...)
	}
	return d.AvailableWeights()
}

// RegisterSystemFonts replaces the host-system table with the families the
// enumerator reports. System descriptors carry names only and live for the
// current process; they are never persisted.
func (c *Catalog) RegisterSystemFonts(ctx context.Context, enum port.SystemFontEnumerator) error {
	log := logging.FromContext(ctx)

	if !enum.IsAvailable(ctx) {
		log.Debug().Msg("system font enumeration unavailable")
		return nil
	}

	families, err := enum.EnumerateFamilies(ctx)
	if err != nil {
		return err
	}

	descriptors := make([]entity.FontDescriptor, 0, len(families))
	for _, family := range families {
		descriptors = append(descriptors, entity.FontDescriptor{
			Family:   family,
			Source:   entity.FontSourceSystem,
			CSSValue: family,
		})
	}

	c.mu.Lock()
	c.system = descriptors
	c.mu.Unlock()

	log.Debug().Int("count", len(descriptors)).Msg("registered system fonts")
	return nil
}

// BuiltinFonts returns the builtin table in display order.
func (c *Catalog) BuiltinFonts() []entity.FontDescriptor {
	return append([]entity.FontDescriptor(nil), builtinFonts...)
}

// WebFonts returns the curated web table in display order.
func (c *Catalog) WebFonts() []entity.FontDescriptor {
	return append([]entity.FontDescriptor(nil), webFonts...)
}

// SystemFonts returns the current host-system table.
func (c *Catalog) SystemFonts() []entity.FontDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.FontDescriptor(nil), c.system...)
}

func matchIn(table []entity.FontDescriptor, value string) *entity.FontDescriptor {
	for i := range table {
		if table[i].Family == value || table[i].CSSValue == value {
			d := table[i]
			return &d
		}
	}
	return nil
}
