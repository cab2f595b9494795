package typography

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
)

type failingReader struct{}

func (failingReader) ListByPrefix(context.Context, string) ([]*settings.Setting, error) {
	return nil, errors.New("connection refused")
}

func pageSource(pages map[string]map[string]string) OverrideSource {
	return func(_ context.Context, slug string) (map[string]string, bool, error) {
		overrides, ok := pages[slug]
		return overrides, ok, nil
	}
}

func newSettingsWriter(t *testing.T, repo settings.SettingRepository, resolver *Resolver) settings.Service {
	t.Helper()
	registry := settings.NewKeyRegistry()
	if err := resolver.Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	return settings.NewService(repo, settings.WithRegistry(registry))
}

func TestResolvePrecedence(t *testing.T) {
	ctx := context.Background()
	pages := map[string]map[string]string{
		"about":   {"baseSize": "20"},
		"contact": {},
	}

	empty := NewResolver(settings.NewMemorySettingRepository(), WithOverrideSource(pageSource(pages)))
	if got := empty.Resolve(ctx, "missing")["baseSize"]; got != "16" {
		t.Fatalf("expected default 16, got %q", got)
	}

	repo := settings.NewMemorySettingRepository()
	resolver := NewResolver(repo, WithOverrideSource(pageSource(pages)))
	writer := newSettingsWriter(t, repo, resolver)
	if _, err := writer.Upsert(ctx, settings.UpsertSettingRequest{Key: "typo_site_base_size", Value: "18"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if got := resolver.Resolve(ctx, "about")["baseSize"]; got != "20" {
		t.Fatalf("expected page override 20, got %q", got)
	}
	if got := resolver.Resolve(ctx, "contact")["baseSize"]; got != "18" {
		t.Fatalf("expected global 18, got %q", got)
	}
	if got := resolver.Resolve(ctx, "")["baseSize"]; got != "18" {
		t.Fatalf("expected global 18 without slug, got %q", got)
	}
}

func TestResolveReturnsEveryKey(t *testing.T) {
	values := NewResolver(nil).Resolve(context.Background(), "")
	if len(values) != len(Keys()) {
		t.Fatalf("expected %d keys, got %d", len(Keys()), len(values))
	}
	for key, want := range Defaults() {
		if values[key] != want {
			t.Fatalf("%s: expected %q, got %q", key, want, values[key])
		}
	}
}

func TestMergeIgnoresUnknownAndBlank(t *testing.T) {
	merged := Merge(
		map[string]string{"baseSize": "  ", "fontFamily": "serif", "navWeight": "700"},
		map[string]string{"baseSize": "17", "colour": "red"},
	)
	if merged["baseSize"] != "17" {
		t.Fatalf("blank override must inherit, got %q", merged["baseSize"])
	}
	if merged["navWeight"] != "700" {
		t.Fatalf("expected override 700, got %q", merged["navWeight"])
	}
	if _, ok := merged["fontFamily"]; ok {
		t.Fatal("unknown keys must be dropped")
	}
}

func TestResolveDegradesOnStoreErrors(t *testing.T) {
	source := func(context.Context, string) (map[string]string, bool, error) {
		return nil, false, errors.New("timeout")
	}
	values := NewResolver(failingReader{}, WithOverrideSource(source)).Resolve(context.Background(), "about")
	if values["baseSize"] != "16" || values["heroTitleSize"] != "48" {
		t.Fatalf("expected defaults, got %v", values)
	}
}

func TestCustomPrefix(t *testing.T) {
	ctx := context.Background()
	repo := settings.NewMemorySettingRepository()
	resolver := NewResolver(repo, WithSettingPrefix("style_"))
	writer := newSettingsWriter(t, repo, resolver)
	if registry := writer.Registry(); registry.Recognized("typo_nav_size") || !registry.Recognized("style_nav_size") {
		t.Fatalf("unexpected registry keys %v", registry.Keys())
	}
	if _, err := writer.Upsert(ctx, settings.UpsertSettingRequest{Key: "style_nav_size", Value: "13"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got := resolver.Resolve(ctx, "")["navSize"]; got != "13" {
		t.Fatalf("expected 13, got %q", got)
	}
}

func TestValidateOverrides(t *testing.T) {
	if err := ValidateOverrides(map[string]string{"baseSize": "20", "navWeight": "600", "heroTitleSize": ""}); err != nil {
		t.Fatalf("expected valid overrides, got %v", err)
	}
	if err := ValidateOverrides(map[string]string{"fontFamily": "serif"}); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if err := ValidateOverrides(map[string]string{"bodyWeight": "450"}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if err := ValidateOverrides(map[string]string{"baseSize": "20px"}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for unit suffix, got %v", err)
	}
}

func TestCSSVariables(t *testing.T) {
	css := CSSVariables(map[string]string{"baseSize": "20", "bodyWeight": "bold"})
	if !strings.HasPrefix(css, "--typo-base-size: 20px; --typo-body-weight: 400;") {
		t.Fatalf("unexpected css %q", css)
	}
	if !strings.Contains(css, "--typo-hero-title-size: 48px;") {
		t.Fatalf("expected hero default, got %q", css)
	}
}
