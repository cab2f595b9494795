package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
)

type fixture struct {
	pages    Service
	sections sections.Service
	repo     *MemoryPageRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	sectionRepo := sections.NewMemorySectionRepository()
	pageRepo := NewMemoryPageRepository(sectionRepo)
	clock := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return fixture{
		pages:    NewService(pageRepo, WithNow(now)),
		sections: sections.NewService(sectionRepo, sections.WithNow(now)),
		repo:     pageRepo,
	}
}

func TestCreateFromArticleTemplateThenMoveHeroDown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	page, err := f.pages.Create(ctx, CreatePageRequest{
		Slug:       "about",
		TitleHi:    "हमारे बारे में",
		TitleEn:    "About",
		TemplateID: "article",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.TemplateID != "article" {
		t.Fatalf("expected article template, got %q", page.TemplateID)
	}

	listed, err := f.sections.ListByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(listed))
	}
	hero, rich := listed[0], listed[1]
	if hero.Type != sections.TypeHero || hero.Order != 0 || rich.Type != sections.TypeRichText || rich.Order != 1 {
		t.Fatalf("unexpected sections %+v %+v", hero, rich)
	}
	if !hero.Visible || !rich.Visible {
		t.Fatal("template sections must be visible")
	}

	result, err := f.sections.Move(ctx, sections.MoveSectionRequest{ID: hero.ID, Direction: sections.DirectionDown})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !result.Moved {
		t.Fatal("expected hero to move")
	}
	listed, err = f.sections.ListByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("list after move: %v", err)
	}
	if listed[0].ID != rich.ID || listed[1].ID != hero.ID {
		t.Fatalf("expected [RICHTEXT, HERO], got [%s, %s]", listed[0].Type, listed[1].Type)
	}
}

func TestCreateWithUnknownOrMissingTemplateIsBlank(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, tc := range []struct {
		slug     string
		template string
	}{
		{slug: "blank-one", template: ""},
		{slug: "blank-two", template: "does-not-exist"},
	} {
		page, err := f.pages.Create(ctx, CreatePageRequest{Slug: tc.slug, TitleHi: "खाली", TemplateID: tc.template})
		if err != nil {
			t.Fatalf("create %s: %v", tc.slug, err)
		}
		if page.TemplateID != "blank" {
			t.Fatalf("%s: expected blank template, got %q", tc.slug, page.TemplateID)
		}
		listed, err := f.sections.ListByPage(ctx, page.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(listed) != 0 {
			t.Fatalf("%s: expected no sections, got %d", tc.slug, len(listed))
		}
	}
}

func TestCreateEveryTemplateMatchesBlueprint(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	expected := map[string][]sections.Type{
		"biography": {sections.TypeHero, sections.TypeBiography, sections.TypeStats},
		"media":     {sections.TypeHero, sections.TypeVideos},
		"landing":   {sections.TypeHero, sections.TypeStats, sections.TypeRichText, sections.TypeVideos},
	}
	for template, types := range expected {
		page, err := f.pages.Create(ctx, CreatePageRequest{Slug: "page-" + template, TitleHi: "पृष्ठ", TemplateID: template})
		if err != nil {
			t.Fatalf("create %s: %v", template, err)
		}
		listed, err := f.sections.ListByPage(ctx, page.ID)
		if err != nil {
			t.Fatalf("list %s: %v", template, err)
		}
		if len(listed) != len(types) {
			t.Fatalf("%s: expected %d sections, got %d", template, len(types), len(listed))
		}
		for i, typ := range types {
			if listed[i].Type != typ || listed[i].Order != i {
				t.Fatalf("%s[%d]: expected %s@%d, got %s@%d", template, i, typ, i, listed[i].Type, listed[i].Order)
			}
		}
	}
}

func TestCreateDuplicateSlugLeavesExistingUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.pages.Create(ctx, CreatePageRequest{Slug: "about", TitleHi: "पहला", TemplateID: "article"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = f.pages.Create(ctx, CreatePageRequest{Slug: "about", TitleHi: "दूसरा", TemplateID: "landing"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	var slugErr *SlugExistsError
	if !errors.As(err, &slugErr) || slugErr.Slug != "about" {
		t.Fatalf("expected conflicting slug in error, got %v", err)
	}

	stored, err := f.pages.GetBySlug(ctx, "about")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ID != first.ID || stored.TitleHi != "पहला" {
		t.Fatalf("existing page changed: %+v", stored)
	}
	listed, _ := f.sections.ListByPage(ctx, first.ID)
	if len(listed) != 2 {
		t.Fatalf("expected original 2 sections, got %d", len(listed))
	}
}

func TestSlugMatchIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.pages.Create(ctx, CreatePageRequest{Slug: "about", TitleHi: "पृष्ठ"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.pages.GetBySlug(ctx, "About"); !IsNotFound(err) {
		t.Fatalf("expected not found for different case, got %v", err)
	}

	upper, err := f.pages.Create(ctx, CreatePageRequest{Slug: "About", TitleHi: "दूसरा"})
	if err != nil {
		t.Fatalf("create differently cased slug: %v", err)
	}
	if _, err := f.pages.Create(ctx, CreatePageRequest{Slug: "About", TitleHi: "तीसरा"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected exact match to collide, got %v", err)
	}
	stored, err := f.pages.GetBySlug(ctx, "About")
	if err != nil || stored.ID != upper.ID {
		t.Fatalf("expected About to resolve to its own page, got %v %v", stored, err)
	}
}

func TestCreateAcceptsDevanagariSlug(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.pages.Create(ctx, CreatePageRequest{Slug: "हमारे-बारे-में", TitleHi: "हमारे बारे में", TemplateID: "article"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, err := f.pages.GetBySlug(ctx, "हमारे-बारे-में")
	if err != nil || stored.ID != created.ID {
		t.Fatalf("expected devanagari slug lookup, got %v %v", stored, err)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cases := []struct {
		name  string
		req   CreatePageRequest
		field string
	}{
		{name: "missing title", req: CreatePageRequest{Slug: "x"}, field: "TitleHi"},
		{name: "blank title", req: CreatePageRequest{Slug: "x", TitleHi: "   "}, field: "TitleHi"},
		{name: "missing slug", req: CreatePageRequest{TitleHi: "t"}, field: "Slug"},
		{name: "invalid slug", req: CreatePageRequest{Slug: "Hello World", TitleHi: "t"}, field: "Slug"},
		{name: "doubled hyphen", req: CreatePageRequest{Slug: "a--b", TitleHi: "t"}, field: "Slug"},
		{name: "slash in slug", req: CreatePageRequest{Slug: "a/b", TitleHi: "t"}, field: "Slug"},
		{name: "unknown typography", req: CreatePageRequest{Slug: "x", TitleHi: "t", Typography: map[string]string{"fontFamily": "serif"}}, field: "Typography"},
		{name: "invalid typography", req: CreatePageRequest{Slug: "x", TitleHi: "t", Typography: map[string]string{"baseSize": "huge"}}, field: "Typography"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.pages.Create(ctx, tc.req)
			var verrs validation.Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if _, ok := verrs[tc.field]; !ok {
				t.Fatalf("expected %s error, got %v", tc.field, verrs)
			}
		})
	}
	if pages, _ := f.pages.List(ctx); len(pages) != 0 {
		t.Fatalf("validation failures must not write, found %d pages", len(pages))
	}
}

func TestUpdateRechecksSlugAndTypography(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	about, err := f.pages.Create(ctx, CreatePageRequest{Slug: "about", TitleHi: "परिचय"})
	if err != nil {
		t.Fatalf("create about: %v", err)
	}
	if _, err := f.pages.Create(ctx, CreatePageRequest{Slug: "contact", TitleHi: "संपर्क"}); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	_, err = f.pages.Update(ctx, UpdatePageRequest{ID: about.ID, Slug: "contact", TitleHi: "परिचय"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	updated, err := f.pages.Update(ctx, UpdatePageRequest{
		ID:         about.ID,
		Slug:       "about-us",
		TitleHi:    "परिचय",
		TitleEn:    "About us",
		Typography: map[string]string{"baseSize": "20", "navSize": " "},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "about-us" || updated.Typography["baseSize"] != "20" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if _, ok := updated.Typography["navSize"]; ok {
		t.Fatal("blank overrides must be dropped")
	}
	if _, err := f.pages.GetBySlug(ctx, "about"); !IsNotFound(err) {
		t.Fatalf("old slug should be free, got %v", err)
	}
	if !updated.CreatedAt.Equal(about.CreatedAt) {
		t.Fatal("created_at must be preserved")
	}
}

func TestSetPublished(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	page, err := f.pages.Create(ctx, CreatePageRequest{Slug: "news", TitleHi: "समाचार"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.Published {
		t.Fatal("pages start unpublished")
	}
	published, err := f.pages.SetPublished(ctx, PublishPageRequest{ID: page.ID, Published: true})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !published.Published {
		t.Fatal("expected published page")
	}
}

func TestDeleteCascadesToSections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	page, err := f.pages.Create(ctx, CreatePageRequest{Slug: "landing", TitleHi: "मुख्य", TemplateID: "landing"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := f.pages.Create(ctx, CreatePageRequest{Slug: "other", TitleHi: "अन्य", TemplateID: "article"})
	if err != nil {
		t.Fatalf("create other: %v", err)
	}

	if err := f.pages.Delete(ctx, page.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.pages.Get(ctx, page.ID); !IsNotFound(err) {
		t.Fatalf("expected page gone, got %v", err)
	}
	if listed, _ := f.sections.ListByPage(ctx, page.ID); len(listed) != 0 {
		t.Fatalf("expected sections removed, got %d", len(listed))
	}
	if listed, _ := f.sections.ListByPage(ctx, other.ID); len(listed) != 2 {
		t.Fatalf("other page sections must survive, got %d", len(listed))
	}
	if err := f.pages.Delete(ctx, page.ID); !IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestCreateUsesCallerID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	page, err := f.pages.Create(ctx, CreatePageRequest{ID: id, Slug: "fixed", TitleHi: "स्थिर"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.ID != id {
		t.Fatalf("expected %s, got %s", id, page.ID)
	}
}
