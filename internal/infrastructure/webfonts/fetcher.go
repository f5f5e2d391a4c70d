// Package webfonts fetches remote font stylesheets over HTTP and extracts
// the @font-face rules they declare.
package webfonts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/substyle/substyle/internal/application/port"
	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/logging"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// maxStylesheetBytes caps how much CSS we are willing to read from the
// remote service.
const maxStylesheetBytes = 1 << 20

// Fetcher implements port.StylesheetFetcher against a Google-Fonts-style
// CSS service. The base URL may be swapped at runtime on config reload.
type Fetcher struct {
	mu      sync.RWMutex
	baseURL string
	client  *http.Client
}

var _ port.StylesheetFetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher for the given stylesheet service base URL.
// A nil client falls back to http.DefaultClient.
func NewFetcher(baseURL string, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// SetBaseURL replaces the stylesheet service address. Requests already in
// flight keep the address they were built with.
func (f *Fetcher) SetBaseURL(baseURL string) {
	f.mu.Lock()
	f.baseURL = strings.TrimRight(baseURL, "/")
	f.mu.Unlock()
}

// StylesheetURL builds the deterministic resource address for a family and
// weight list: the family percent-encoded, the weights sorted ascending and
// joined for the query.
func (f *Fetcher) StylesheetURL(family string, weights []int) string {
	f.mu.RLock()
	base := f.baseURL
	f.mu.RUnlock()

	sorted := entity.SortWeights(weights)
	parts := make([]string, len(sorted))
	for i, w := range sorted {
		parts[i] = strconv.Itoa(w)
	}
	return fmt.Sprintf("%s/css2?family=%s:wght@%s&display=swap",
		base, url.PathEscape(family), strings.Join(parts, ";"))
}

// FetchStylesheet retrieves the stylesheet for the family and weights and
// returns the @font-face rules it declares.
func (f *Fetcher) FetchStylesheet(ctx context.Context, family string, weights []int) ([]entity.FaceRule, error) {
	log := logging.FromContext(ctx)

	target := f.StylesheetURL(family, weights)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, err
	}
	// Some CSS services vary the format on User-Agent; ask for woff2.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stylesheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch stylesheet: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStylesheetBytes))
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}

	rules := ParseFontFaces(body)
	if len(rules) == 0 {
		return nil, fmt.Errorf("stylesheet for %q declared no font faces", family)
	}

	log.Debug().Str("family", family).Int("faces", len(rules)).Msg("parsed stylesheet")
	return rules, nil
}

// ParseFontFaces extracts (family, weight, source URL) triples from the
// @font-face blocks of a stylesheet. Rules missing a source URL are
// skipped; a missing font-weight defaults to 400.
func ParseFontFaces(stylesheet []byte) []entity.FaceRule {
	p := css.NewParser(parse.NewInput(bytes.NewReader(stylesheet)), false)

	var rules []entity.FaceRule
	var current *entity.FaceRule

	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return rules
		case css.BeginAtRuleGrammar:
			if string(data) == "@font-face" {
				current = &entity.FaceRule{Weight: 400}
			}
		case css.EndAtRuleGrammar:
			if current != nil && current.SourceURL != "" {
				rules = append(rules, *current)
			}
			current = nil
		case css.DeclarationGrammar:
			if current == nil {
				continue
			}
			switch string(data) {
			case "font-family":
				current.Family = unquoteTokens(p.Values())
			case "font-weight":
				if w, err := strconv.Atoi(firstNumber(p.Values())); err == nil {
					current.Weight = w
				}
			case "src":
				if u := firstURL(p.Values()); u != "" {
					current.SourceURL = u
				}
			}
		}
	}
}

func unquoteTokens(values []css.Token) string {
	var b strings.Builder
	for _, v := range values {
		if v.TokenType == css.WhitespaceToken {
			continue
		}
		b.Write(v.Data)
	}
	return strings.Trim(b.String(), `'"`)
}

func firstNumber(values []css.Token) string {
	for _, v := range values {
		if v.TokenType == css.NumberToken {
			return string(v.Data)
		}
	}
	return ""
}

func firstURL(values []css.Token) string {
	for _, v := range values {
		if v.TokenType != css.URLToken {
			continue
		}
		u := string(v.Data)
		u = strings.TrimPrefix(u, "url(")
		u = strings.TrimSuffix(u, ")")
		return strings.Trim(u, `'"`)
	}
	return ""
}
