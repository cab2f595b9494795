package composer

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/i18n"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/render"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/typography"
)

type fixture struct {
	pages    pages.Service
	sections sections.Service
	settings settings.Service
	composer *Composer
}

func newFixture(t *testing.T, registry *render.Registry) fixture {
	t.Helper()
	sectionRepo := sections.NewMemorySectionRepository()
	pageRepo := pages.NewMemoryPageRepository(sectionRepo)
	clock := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	settingRepo := settings.NewMemorySettingRepository()
	resolver := typography.NewResolver(settingRepo)
	keys := settings.NewKeyRegistry()
	if err := resolver.Register(keys); err != nil {
		t.Fatalf("register typography keys: %v", err)
	}

	if registry == nil {
		var err error
		registry, err = render.NewDefaultRegistry(nil)
		if err != nil {
			t.Fatalf("default registry: %v", err)
		}
	}

	pageSvc := pages.NewService(pageRepo, pages.WithNow(now))
	sectionSvc := sections.NewService(sectionRepo, sections.WithNow(now))
	return fixture{
		pages:    pageSvc,
		sections: sectionSvc,
		settings: settings.NewService(settingRepo, settings.WithRegistry(keys)),
		composer: New(pageSvc, sectionSvc, resolver, registry,
			WithPageURLs(NewPageURLs("https://example.com", "hi")),
		),
	}
}

func (f fixture) createPage(t *testing.T, req pages.CreatePageRequest) *pages.Page {
	t.Helper()
	page, err := f.pages.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return page
}

func TestRenderPageFiltersHiddenAndOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	page := f.createPage(t, pages.CreatePageRequest{Slug: "about", TitleHi: "परिचय", TitleEn: "About", Published: true})

	visible := false
	a, err := f.sections.Create(ctx, sections.CreateSectionRequest{PageID: page.ID, Type: sections.TypeHero})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	if _, err := f.sections.Create(ctx, sections.CreateSectionRequest{PageID: page.ID, Type: sections.TypeStats, Visible: &visible}); err != nil {
		t.Fatalf("create B: %v", err)
	}
	c, err := f.sections.Create(ctx, sections.CreateSectionRequest{PageID: page.ID, Type: sections.TypeRichText})
	if err != nil {
		t.Fatalf("create C: %v", err)
	}

	rendered, err := f.composer.RenderPage(ctx, "about", "en")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(rendered.Sections) != 2 || rendered.Sections[0].ID != a.ID || rendered.Sections[1].ID != c.ID {
		t.Fatalf("expected [A, C], got %+v", rendered.Sections)
	}
	if rendered.Title != "About" || rendered.Locale != "en" {
		t.Fatalf("unexpected title/locale %q/%q", rendered.Title, rendered.Locale)
	}

	again, err := f.composer.RenderPage(ctx, "about", "en")
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	for i := range again.Sections {
		if again.Sections[i].ID != rendered.Sections[i].ID {
			t.Fatal("render order must be stable across calls")
		}
	}
}

func TestRenderPageTiesBreakByCreation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	page := f.createPage(t, pages.CreatePageRequest{Slug: "ties", TitleHi: "बराबर", Published: true})
	zero := 0
	first, err := f.sections.Create(ctx, sections.CreateSectionRequest{PageID: page.ID, Type: sections.TypeHero, Order: &zero})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := f.sections.Create(ctx, sections.CreateSectionRequest{PageID: page.ID, Type: sections.TypeRichText, Order: &zero})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	rendered, err := f.composer.RenderPage(ctx, "ties", "hi")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if rendered.Sections[0].ID != first.ID || rendered.Sections[1].ID != second.ID {
		t.Fatalf("expected creation order on equal order values")
	}
}

func TestRenderPageNotFoundForMissingAndUnpublished(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.createPage(t, pages.CreatePageRequest{Slug: "draft", TitleHi: "मसौदा", TemplateID: "landing"})

	if _, err := f.composer.RenderPage(ctx, "missing", "hi"); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("expected not found for missing page, got %v", err)
	}
	if _, err := f.composer.RenderPage(ctx, "draft", "hi"); !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("expected not found for unpublished page, got %v", err)
	}
	preview, err := f.composer.Preview(ctx, "draft", "hi")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(preview.Sections) != 4 || preview.Published {
		t.Fatalf("unexpected preview %+v", preview)
	}
}

func TestRenderPageDegradesFailingRenderer(t *testing.T) {
	ctx := context.Background()
	registry := render.NewRegistry()
	if err := registry.Register(sections.TypeHero, func(context.Context, *sections.Section, string) (template.HTML, error) {
		return "", errors.New("boom")
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(sections.TypeRichText, func(context.Context, *sections.Section, string) (template.HTML, error) {
		return "<p>ok</p>", nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	f := newFixture(t, registry)
	f.createPage(t, pages.CreatePageRequest{Slug: "media", TitleHi: "मीडिया", TemplateID: "media", Published: true})

	rendered, err := f.composer.RenderPage(ctx, "media", "hi")
	if err != nil {
		t.Fatalf("render must not fail: %v", err)
	}
	if len(rendered.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(rendered.Sections))
	}
	for _, section := range rendered.Sections {
		if !section.Degraded || !strings.HasPrefix(string(section.HTML), "<!-- section") {
			t.Fatalf("expected placeholder for %s, got %+v", section.Type, section)
		}
	}
}

func TestRenderPageTypographyPrecedence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.createPage(t, pages.CreatePageRequest{Slug: "plain", TitleHi: "सादा", Published: true})
	if got := mustRender(t, f, "plain").Typography["baseSize"]; got != "16" {
		t.Fatalf("expected default 16, got %q", got)
	}

	if _, err := f.settings.Upsert(ctx, settings.UpsertSettingRequest{Key: "typo_site_base_size", Value: "18"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	f.createPage(t, pages.CreatePageRequest{Slug: "big", TitleHi: "बड़ा", Published: true, Typography: map[string]string{"baseSize": "20"}})

	if got := mustRender(t, f, "big").Typography["baseSize"]; got != "20" {
		t.Fatalf("expected override 20, got %q", got)
	}
	plain := mustRender(t, f, "plain")
	if got := plain.Typography["baseSize"]; got != "18" {
		t.Fatalf("expected global 18, got %q", got)
	}
	if !strings.Contains(string(plain.CSSVariables), "--typo-base-size: 18px;") {
		t.Fatalf("unexpected css %q", plain.CSSVariables)
	}
}

func TestRenderPageURLs(t *testing.T) {
	f := newFixture(t, nil)
	f.createPage(t, pages.CreatePageRequest{Slug: "about", TitleHi: "परिचय", Published: true})
	rendered := mustRender(t, f, "about")
	if rendered.CanonicalURL != "https://example.com/about" {
		t.Fatalf("unexpected canonical %q", rendered.CanonicalURL)
	}
	en := rendered.Alternates["en"]
	if !strings.HasPrefix(en, "https://example.com/about") || !strings.Contains(en, "lang=en") {
		t.Fatalf("unexpected english alternate %q", en)
	}
}

func mustRender(t *testing.T, f fixture, slug string) *RenderedPage {
	t.Helper()
	rendered, err := f.composer.RenderPage(context.Background(), slug, "hi")
	if err != nil {
		t.Fatalf("render %s: %v", slug, err)
	}
	return rendered
}

func TestRenderPageTakesLocaleFromContext(t *testing.T) {
	f := newFixture(t, nil)
	f.createPage(t, pages.CreatePageRequest{Slug: "about", TitleHi: "परिचय", TitleEn: "About", Published: true})

	ctx := i18n.WithLocale(context.Background(), "EN")
	page, err := f.composer.RenderPage(ctx, "about", "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.Locale != i18n.English || page.Title != "About" {
		t.Fatalf("expected english from context, got %s %q", page.Locale, page.Title)
	}

	page, err = f.composer.RenderPage(ctx, "about", "hi")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.Locale != i18n.Hindi {
		t.Fatalf("explicit locale should win over context, got %s", page.Locale)
	}

	page, err = f.composer.RenderPage(context.Background(), "about", "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.Locale != i18n.Hindi {
		t.Fatalf("expected default locale without context, got %s", page.Locale)
	}
}
