package fonts

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/substyle/substyle/internal/application/port"
	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// glyphFetchParallelism bounds concurrent per-weight glyph fetches for one
// family.
const glyphFetchParallelism = 4

// sampleSizePx is the size used when forcing a face through the registry's
// load primitive. Any size works; glyph data is size-independent.
const sampleSizePx = 16

// LoadError reports a failed stylesheet acquisition for a family.
type LoadError struct {
	Family string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load font family %q: %v", e.Family, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader acquires web font faces on demand. It keeps per-family load state
// for the life of the process, coalesces concurrent requests for the same
// family and weight set into a single fetch, and can force a reload when a
// declared weight is missing from the environment's registry.
//
// All state is instance state; construct one Loader per application session
// and inject it wherever font operations are needed.
type Loader struct {
	catalog  *Catalog
	fetcher  port.StylesheetFetcher
	registry port.FontRegistry

	group singleflight.Group

	mu        sync.Mutex
	loaded    map[string]map[int]struct{} // family -> weights confirmed loaded
	pending   map[string]int              // family -> callers with a load in flight
	reloading map[string]struct{}         // families with a forced reload underway
}

// NewLoader creates a loader bound to a catalog, a stylesheet fetcher, and
// the environment's font registry.
func NewLoader(catalog *Catalog, fetcher port.StylesheetFetcher, registry port.FontRegistry) *Loader {
	return &Loader{
		catalog:   catalog,
		fetcher:   fetcher,
		registry:  registry,
		loaded:    make(map[string]map[int]struct{}),
		pending:   make(map[string]int),
		reloading: make(map[string]struct{}),
	}
}

// LoadFamily ensures the family's faces are fetched and registered. The
// effective weight set is the explicit argument if given, else the
// catalog's declared weights, else the default pair. Weights already loaded
// are skipped; if nothing is missing the call returns immediately.
//
// Concurrent calls for the same family and missing-weight set join one
// in-flight fetch. A successful load marks every declared weight loaded,
// not just the requested ones: the stylesheet is fetched for the full
// declared set, so narrowing would discard information.
//
// Only web families fetch anything. Builtin and host-system families are
// already present in the environment and are marked loaded directly.
func (l *Loader) LoadFamily(ctx context.Context, family string, weights ...int) error {
	log := logging.FromContext(ctx)

	desc := l.catalog.Resolve(family)
	declared := l.declaredWeights(desc)

	effective := weights
	if len(effective) == 0 {
		effective = declared
	} else if desc != nil && desc.Source == entity.FontSourceWeb {
		// Never chase weights the stylesheet does not serve.
		effective = intersect(effective, declared)
	}
	effective = entity.SortWeights(effective)

	if desc == nil || desc.Source != entity.FontSourceWeb {
		l.markLoaded(family, effective)
		return nil
	}

	missing := l.missingWeights(family, effective)
	if len(missing) == 0 {
		return nil
	}

	key := dedupKey(family, missing)

	l.mu.Lock()
	l.pending[family]++
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.pending[family]--
		if l.pending[family] <= 0 {
			delete(l.pending, family)
		}
		l.mu.Unlock()
	}()

	_, err, shared := l.group.Do(key, func() (any, error) {
		return nil, l.fetchAndRegister(ctx, family, declared)
	})
	if shared {
		log.Debug().Str("family", family).Str("key", key).Msg("joined in-flight font load")
	}
	return err
}

// IsLoaded reports whether any weight of the family has been loaded.
func (l *Loader) IsLoaded(family string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.loaded[family]) > 0
}

// IsLoading reports whether a load or forced reload for the family is in
// flight.
func (l *Loader) IsLoading(family string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.reloading[family]; ok {
		return true
	}
	return l.pending[family] > 0
}

// LoadedWeights returns the weights confirmed loaded for the family, in
// ascending order.
func (l *Loader) LoadedWeights(family string) []int {
	l.mu.Lock()
	set := l.loaded[family]
	out := make([]int, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	l.mu.Unlock()
	return entity.SortWeights(out)
}

// EnsureWeightLoaded guarantees, best-effort, that the specific weight is
// registered before canvas text is painted with it. Canvas rendering
// silently substitutes the nearest available weight, so a missing declared
// weight triggers a forced reload of the whole family. The face actually
// resolved is returned; a weight mismatch after reload is logged, not
// raised, since host substitution policy is outside our control.
func (l *Loader) EnsureWeightLoaded(ctx context.Context, family string, weight int) (entity.FontFace, error) {
	log := logging.FromContext(ctx)

	desc := l.catalog.Resolve(family)

	registered, err := l.registeredWeights(ctx, family)
	if err != nil {
		return entity.FontFace{}, fmt.Errorf("inspect font registry: %w", err)
	}

	_, present := registered[weight]
	if !present && desc != nil && desc.Source == entity.FontSourceWeb && desc.HasWeight(weight) {
		if err := l.forceReload(ctx, family); err != nil {
			return entity.FontFace{}, err
		}
	}

	face, err := l.registry.EnsureFace(ctx, entity.FaceQuery{
		Family: family,
		Weight: weight,
		SizePx: sampleSizePx,
	})
	if err != nil {
		return entity.FontFace{}, fmt.Errorf("ensure face %s@%d: %w", family, weight, err)
	}
	if face.Weight != weight {
		log.Warn().
			Str("family", family).
			Int("requested", weight).
			Int("resolved", face.Weight).
			Msg("font registry substituted a different weight")
	}
	return face, nil
}

// forceReload invalidates the family's load state, removes its registered
// faces, and refetches the full declared weight set. Concurrent reload
// requests for the same family join the in-flight one instead of starting
// another.
func (l *Loader) forceReload(ctx context.Context, family string) error {
	log := logging.FromContext(ctx)

	_, err, shared := l.group.Do("reload|"+family, func() (any, error) {
		l.mu.Lock()
		l.reloading[family] = struct{}{}
		delete(l.loaded, family)
		l.mu.Unlock()
		defer func() {
			l.mu.Lock()
			delete(l.reloading, family)
			l.mu.Unlock()
		}()

		if err := l.registry.Remove(ctx, family); err != nil {
			return nil, fmt.Errorf("remove registered faces for %q: %w", family, err)
		}

		// Fetch through the dedup key directly rather than via LoadFamily:
		// a plain load completing between the invalidation above and here
		// would repopulate the loaded set and turn LoadFamily into a no-op
		// against a registry we just emptied.
		declared := l.declaredWeights(l.catalog.Resolve(family))
		_, ferr, _ := l.group.Do(dedupKey(family, declared), func() (any, error) {
			return nil, l.fetchAndRegister(ctx, family, declared)
		})
		return nil, ferr
	})
	if shared {
		log.Debug().Str("family", family).Msg("joined in-flight font reload")
	}
	return err
}

// fetchAndRegister is the single-flight body: fetch the stylesheet for all
// declared weights, register the faces, then force per-weight glyph
// acquisition. Stylesheet-stage failure is fatal; glyph-stage failure is
// logged and swallowed since approximate rendering beats blocking.
func (l *Loader) fetchAndRegister(ctx context.Context, family string, declared []int) error {
	log := logging.FromContext(ctx)

	rules, err := l.fetcher.FetchStylesheet(ctx, family, declared)
	if err != nil {
		return &LoadError{Family: family, Err: err}
	}
	if err := l.registry.Add(ctx, rules); err != nil {
		return &LoadError{Family: family, Err: err}
	}

	// Registration only promises lazy glyph loading; canvas-quality
	// rendering needs the binaries fetched now.
	g := new(errgroup.Group)
	g.SetLimit(glyphFetchParallelism)
	for _, w := range declared {
		g.Go(func() error {
			_, err := l.registry.EnsureFace(ctx, entity.FaceQuery{
				Family: family,
				Weight: w,
				SizePx: sampleSizePx,
			})
			if err != nil {
				log.Warn().
					Str("family", family).
					Int("weight", w).
					Err(err).
					Msg("glyph acquisition failed, falling back to lazy loading")
			}
			return nil
		})
	}
	_ = g.Wait()

	l.markLoaded(family, declared)
	log.Debug().Str("family", family).Ints("weights", declared).Msg("font family loaded")
	return nil
}

func (l *Loader) declaredWeights(desc *entity.FontDescriptor) []int {
	if desc == nil {
		return append([]int(nil), entity.DefaultWeights...)
	}
	return desc.AvailableWeights()
}

func (l *Loader) missingWeights(family string, weights []int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	set := l.loaded[family]
	missing := make([]int, 0, len(weights))
	for _, w := range weights {
		if _, ok := set[w]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}

func (l *Loader) markLoaded(family string, weights []int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	set := l.loaded[family]
	if set == nil {
		set = make(map[int]struct{}, len(weights))
		l.loaded[family] = set
	}
	for _, w := range weights {
		set[w] = struct{}{}
	}
}

func (l *Loader) registeredWeights(ctx context.Context, family string) (map[int]struct{}, error) {
	faces, err := l.registry.Faces(ctx, family)
	if err != nil {
		return nil, err
	}
	out := make(map[int]struct{}, len(faces))
	for _, f := range faces {
		out[f.Weight] = struct{}{}
	}
	return out, nil
}

func intersect(weights, declared []int) []int {
	set := make(map[int]struct{}, len(declared))
	for _, w := range declared {
		set[w] = struct{}{}
	}
	out := make([]int, 0, len(weights))
	for _, w := range weights {
		if _, ok := set[w]; ok {
			out = append(out, w)
		}
	}
	return out
}

func dedupKey(family string, weights []int) string {
	parts := make([]string, 0, len(weights)+1)
	parts = append(parts, family)
	for _, w := range weights {
		parts = append(parts, strconv.Itoa(w))
	}
	return strings.Join(parts, "|")
}
