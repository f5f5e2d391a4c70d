// Package hostfonts enumerates font families installed on the host system
// using fontconfig's fc-list command.
package hostfonts

import (
	"bufio"
	"context"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/substyle/substyle/internal/application/port"
	"github.com/substyle/substyle/internal/logging"
)

// Enumerator implements port.SystemFontEnumerator via fc-list. Results are
// cached for the process lifetime: the host font set is treated as static
// while the application runs.
type Enumerator struct {
	mu             sync.RWMutex
	cachedFamilies []string
	cachePopulated bool
}

var _ port.SystemFontEnumerator = (*Enumerator)(nil)

// NewEnumerator creates a new system font enumerator.
func NewEnumerator() *Enumerator {
	return &Enumerator{}
}

// IsAvailable returns true if the fc-list command is available.
func (*Enumerator) IsAvailable(_ context.Context) bool {
	_, err := exec.LookPath("fc-list")
	return err == nil
}

// EnumerateFamilies returns the font family names installed on the system,
// sorted and de-duplicated.
func (e *Enumerator) EnumerateFamilies(ctx context.Context) ([]string, error) {
	log := logging.FromContext(ctx)

	e.mu.RLock()
	if e.cachePopulated {
		families := e.cachedFamilies
		e.mu.RUnlock()
		return families, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Double-check after acquiring write lock.
	if e.cachePopulated {
		return e.cachedFamilies, nil
	}

	families, err := e.queryFamilies(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("failed to query system fonts")
		return nil, err
	}

	e.cachedFamilies = families
	e.cachePopulated = true
	log.Debug().Int("count", len(families)).Msg("cached system font families")

	return families, nil
}

// queryFamilies executes fc-list and parses the output.
func (*Enumerator) queryFamilies(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, "fc-list", ":", "family")
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	familySet := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// fc-list may return comma-separated families for fonts with
		// aliases, e.g. "DejaVu Sans,DejaVu Sans Light".
		for _, family := range strings.Split(line, ",") {
			family = strings.TrimSpace(family)
			if family != "" {
				familySet[family] = struct{}{}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	families := make([]string, 0, len(familySet))
	for family := range familySet {
		families = append(families, family)
	}
	sort.Strings(families)

	return families, nil
}
