// Package fontface provides an in-process implementation of the
// environment's font-face registry, mirroring the browser registry the
// rendering layer consumes: registration is lazy, glyph data is fetched on
// the first explicit load, and a missing weight resolves to the nearest
// registered one.
package fontface

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/substyle/substyle/internal/application/port"
	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/logging"
)

// maxFaceBytes caps a single glyph download.
const maxFaceBytes = 8 << 20

type face struct {
	rule   entity.FaceRule
	status entity.FaceStatus
	data   []byte
}

// Registry implements port.FontRegistry.
type Registry struct {
	client *http.Client

	mu    sync.Mutex
	faces map[string][]*face // keyed by family
}

var _ port.FontRegistry = (*Registry)(nil)

// NewRegistry creates an empty registry. A nil client falls back to
// http.DefaultClient.
func NewRegistry(client *http.Client) *Registry {
	if client == nil {
		client = http.DefaultClient
	}
	return &Registry{
		client: client,
		faces:  make(map[string][]*face),
	}
}

// Faces returns the (family, weight, status) triples registered for the
// family.
func (r *Registry) Faces(_ context.Context, family string) ([]entity.FontFace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	registered := r.faces[family]
	out := make([]entity.FontFace, 0, len(registered))
	for _, f := range registered {
		out = append(out, entity.FontFace{
			Family: f.rule.Family,
			Weight: f.rule.Weight,
			Status: f.status,
		})
	}
	return out, nil
}

// Add registers @font-face rules. A rule for an already-registered
// (family, weight) pair replaces it, resetting its status: a re-fetched
// stylesheet may point at different glyph data.
func (r *Registry) Add(_ context.Context, rules []entity.FaceRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rule := range rules {
		if rule.Family == "" || rule.SourceURL == "" {
			return fmt.Errorf("invalid font face rule %+v", rule)
		}
		replaced := false
		for _, existing := range r.faces[rule.Family] {
			if existing.rule.Weight == rule.Weight {
				existing.rule = rule
				existing.status = entity.FaceStatusUnloaded
				existing.data = nil
				replaced = true
				break
			}
		}
		if !replaced {
			r.faces[rule.Family] = append(r.faces[rule.Family], &face{
				rule:   rule,
				status: entity.FaceStatusUnloaded,
			})
		}
	}
	return nil
}

// Remove drops every face registered for the family.
func (r *Registry) Remove(_ context.Context, family string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.faces, family)
	return nil
}

// EnsureFace forces the face matching the query to be fetched and ready.
// When the exact weight is not registered, the nearest registered weight is
// substituted, matching canvas text rendering behavior.
func (r *Registry) EnsureFace(ctx context.Context, query entity.FaceQuery) (entity.FontFace, error) {
	log := logging.FromContext(ctx)

	r.mu.Lock()
	target := nearestFace(r.faces[query.Family], query.Weight)
	if target == nil {
		r.mu.Unlock()
		return entity.FontFace{}, fmt.Errorf("no face registered for family %q", query.Family)
	}
	if target.status == entity.FaceStatusLoaded {
		result := entity.FontFace{Family: target.rule.Family, Weight: target.rule.Weight, Status: target.status}
		r.mu.Unlock()
		return result, nil
	}
	target.status = entity.FaceStatusLoading
	rule := target.rule
	r.mu.Unlock()

	data, err := r.fetchFace(ctx, rule.SourceURL)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		target.status = entity.FaceStatusUnloaded
		return entity.FontFace{}, fmt.Errorf("fetch face %s@%d: %w", rule.Family, rule.Weight, err)
	}
	target.data = data
	target.status = entity.FaceStatusLoaded

	log.Debug().
		Str("family", rule.Family).
		Int("weight", rule.Weight).
		Int("bytes", len(data)).
		Msg("font face ready")

	return entity.FontFace{Family: rule.Family, Weight: rule.Weight, Status: entity.FaceStatusLoaded}, nil
}

// FaceData returns the glyph bytes for an exact (family, weight) pair, for
// consumers that rasterize text directly. Returns nil when the face is not
// loaded.
func (r *Registry) FaceData(family string, weight int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.faces[family] {
		if f.rule.Weight == weight && f.status == entity.FaceStatusLoaded {
			return f.data
		}
	}
	return nil
}

func (r *Registry) fetchFace(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxFaceBytes))
}

// nearestFace picks the face whose weight is closest to the requested one,
// preferring the lighter face on ties.
func nearestFace(faces []*face, weight int) *face {
	var best *face
	bestDist := 0
	for _, f := range faces {
		dist := f.rule.Weight - weight
		if dist < 0 {
			dist = -dist
		}
		switch {
		case best == nil,
			dist < bestDist,
			dist == bestDist && f.rule.Weight < best.rule.Weight:
			best = f
			bestDist = dist
		}
	}
	return best
}
