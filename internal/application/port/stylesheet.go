package port

import (
	"context"

	"github.com/substyle/substyle/internal/domain/entity"
)

// StylesheetFetcher retrieves a web font's stylesheet and returns the
// @font-face rules it declares. The resource is addressed deterministically
// from the family name and the requested weight list.
type StylesheetFetcher interface {
	FetchStylesheet(ctx context.Context, family string, weights []int) ([]entity.FaceRule, error)
}
