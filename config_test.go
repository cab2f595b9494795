package site_test

import (
	"context"
	"errors"
	"testing"

	site "github.com/macintoshUserchg/tnsir-km-rempo-sub001"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
)

func TestConfigValidateDefaultLocaleMustBeConfigured(t *testing.T) {
	cfg := site.DefaultConfig()
	cfg.Locales = []string{"hi"}
	cfg.DefaultLocale = "en"

	if err := cfg.Validate(); !errors.Is(err, site.ErrDefaultLocaleUnsupported) {
		t.Fatalf("expected ErrDefaultLocaleUnsupported, got %v", err)
	}
}

func TestConfigValidateRejectsUnknownLocale(t *testing.T) {
	cfg := site.DefaultConfig()
	cfg.Locales = []string{"hi", "fr"}

	if err := cfg.Validate(); !errors.Is(err, site.ErrLocaleUnsupported) {
		t.Fatalf("expected ErrLocaleUnsupported, got %v", err)
	}
}

func TestConfigValidateCacheRequiresTTL(t *testing.T) {
	cfg := site.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.DefaultTTL = 0

	if err := cfg.Validate(); !errors.Is(err, site.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}
}

func TestConfigValidateTracingRequiresEndpoint(t *testing.T) {
	cfg := site.DefaultConfig()
	cfg.Tracing.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, site.ErrTracingEndpointRequired) {
		t.Fatalf("expected ErrTracingEndpointRequired, got %v", err)
	}
}

func TestModuleCreatesPageFromTemplate(t *testing.T) {
	module, err := site.New(site.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	ctx := context.Background()

	page, err := module.Pages().Create(ctx, pages.CreatePageRequest{
		Slug:       "home",
		TitleHi:    "मुखपृष्ठ",
		TemplateID: "landing",
		Published:  true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := module.Sections().ListByPage(ctx, page.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	blueprint, _ := module.Templates().Get("landing")
	if len(list) != len(blueprint.Sections) {
		t.Fatalf("expected %d sections, got %d", len(blueprint.Sections), len(list))
	}

	rendered, err := module.Composer().RenderPage(ctx, "home", "hi")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if rendered.Title != "मुखपृष्ठ" {
		t.Fatalf("expected hindi title, got %q", rendered.Title)
	}
}
