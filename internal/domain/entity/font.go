package entity

import (
	"sort"
	"strings"
)

// FontSource identifies where a font family comes from.
type FontSource string

const (
	// FontSourceBuiltin is a face bundled with the application.
	FontSourceBuiltin FontSource = "builtin"
	// FontSourceWeb is a face fetched at runtime from a remote stylesheet.
	FontSourceWeb FontSource = "web"
	// FontSourceSystem is a face installed on the host system.
	FontSourceSystem FontSource = "system"
)

// Weight bounds per the CSS numeric scale.
const (
	MinWeight = 100
	MaxWeight = 900
)

// DefaultWeights is the assumed weight pair for fonts whose per-weight
// availability is unknown (builtin faces, host-system faces, unrecognized
// values). The host environment does not report per-weight availability,
// so this is a deliberate approximation.
var DefaultWeights = []int{400, 700}

// FontDescriptor describes a single font family known to the catalog.
// Builtin and web descriptors are immutable once defined; system
// descriptors are rebuilt from the host enumeration each process lifetime.
type FontDescriptor struct {
	Family   string     // unique display name
	Source   FontSource
	CSSValue string     // family stack usable for rendering
	Weights  []int      // ascending, within [100,900]; nil means unknown
}

// AvailableWeights returns the declared weight list, falling back to the
// default pair when the descriptor carries none.
func (d *FontDescriptor) AvailableWeights() []int {
	if len(d.Weights) == 0 {
		return append([]int(nil), DefaultWeights...)
	}
	return append([]int(nil), d.Weights...)
}

// HasWeight reports whether the descriptor declares the given weight.
func (d *FontDescriptor) HasWeight(weight int) bool {
	for _, w := range d.AvailableWeights() {
		if w == weight {
			return true
		}
	}
	return false
}

// LeadingFamily extracts the first family token from a comma-separated CSS
// stack, stripping surrounding quotes. Used as a display fallback when no
// catalog entry matches.
func LeadingFamily(cssValue string) string {
	first, _, _ := strings.Cut(cssValue, ",")
	first = strings.TrimSpace(first)
	return strings.Trim(first, `'"`)
}

// FaceStatus is the lifecycle state of a registered font face.
type FaceStatus string

const (
	FaceStatusUnloaded FaceStatus = "unloaded"
	FaceStatusLoading  FaceStatus = "loading"
	FaceStatusLoaded   FaceStatus = "loaded"
)

// FontFace is one (family, weight, status) triple as reported by the
// environment's font-face registry.
type FontFace struct {
	Family string
	Weight int
	Status FaceStatus
}

// FaceRule is a single @font-face declaration parsed from a fetched
// stylesheet: the family and weight it declares and the URL of the
// underlying glyph data.
type FaceRule struct {
	Family    string
	Weight    int
	SourceURL string
}

// FaceQuery keys the registry's explicit load primitive: weight + size +
// family, mirroring a CSS font shorthand.
type FaceQuery struct {
	Family string
	Weight int
	SizePx int
}

// SortWeights returns a sorted copy of the given weights with duplicates
// removed.
func SortWeights(weights []int) []int {
	out := make([]int, 0, len(weights))
	seen := make(map[int]struct{}, len(weights))
	for _, w := range weights {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}
