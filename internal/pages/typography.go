package pages

import (
	"context"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/typography"
)

// TypographyOverrides adapts the page store to the typography resolver. A
// missing page is not an error; the resolver then uses settings and
// defaults only.
func TypographyOverrides(reader interface {
	GetBySlug(ctx context.Context, slug string) (*Page, error)
}) typography.OverrideSource {
	return func(ctx context.Context, slug string) (map[string]string, bool, error) {
		page, err := reader.GetBySlug(ctx, slug)
		if err != nil {
			if IsNotFound(err) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return page.Typography, true, nil
	}
}
