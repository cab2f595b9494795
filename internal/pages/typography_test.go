package pages

import (
	"context"
	"errors"
	"testing"
)

type brokenReader struct{}

func (brokenReader) GetBySlug(context.Context, string) (*Page, error) {
	return nil, errors.New("connection reset")
}

func TestTypographyOverrides(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.pages.Create(ctx, CreatePageRequest{
		Slug:       "about",
		TitleHi:    "परिचय",
		Typography: map[string]string{"baseSize": "20"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	source := TypographyOverrides(f.pages)
	overrides, found, err := source(ctx, "about")
	if err != nil || !found {
		t.Fatalf("expected overrides for about, found=%v err=%v", found, err)
	}
	if overrides["baseSize"] != "20" {
		t.Fatalf("expected baseSize 20, got %q", overrides["baseSize"])
	}

	_, found, err = source(ctx, "missing")
	if err != nil || found {
		t.Fatalf("expected missing page to report not found without error, found=%v err=%v", found, err)
	}

	if _, _, err := TypographyOverrides(brokenReader{})(ctx, "about"); err == nil {
		t.Fatalf("expected store error to surface")
	}
}
