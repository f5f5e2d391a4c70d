package port

import "context"

// SystemFontEnumerator lists font family names installed on the host
// system. The host reports names only; per-weight availability is not
// exposed.
type SystemFontEnumerator interface {
	// EnumerateFamilies returns installed font family names.
	EnumerateFamilies(ctx context.Context) ([]string, error)

	// IsAvailable reports whether enumeration works on this host.
	IsAvailable(ctx context.Context) bool
}
