// Package port defines the interfaces through which the application core
// talks to its environment: the font-face registry, the stylesheet network,
// the host system, and the analysis service.
package port

import (
	"context"

	"github.com/substyle/substyle/internal/domain/entity"
)

// FontRegistry is the environment's live font-face registry. In a browser
// host this is document.fonts; the in-process implementation mirrors its
// semantics for canvas rendering, including nearest-weight substitution.
type FontRegistry interface {
	// Faces enumerates the (family, weight, status) triples currently
	// registered for the given family.
	Faces(ctx context.Context, family string) ([]entity.FontFace, error)

	// Add registers @font-face rules. Registration alone only promises
	// lazy glyph loading; use EnsureFace to force acquisition.
	Add(ctx context.Context, rules []entity.FaceRule) error

	// Remove drops every registered face for the family, as when the
	// stylesheet element referencing it is removed.
	Remove(ctx context.Context, family string) error

	// EnsureFace forces the face matching the query to be fetched and
	// ready, returning the face actually resolved. The registry may
	// substitute the nearest available weight; callers must inspect the
	// returned face rather than assume an exact match.
	EnsureFace(ctx context.Context, query entity.FaceQuery) (entity.FontFace, error)
}
