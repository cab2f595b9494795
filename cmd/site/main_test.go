package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	site "github.com/macintoshUserchg/tnsir-km-rempo-sub001"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/cmd/site/internal/bootstrap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func useMemoryRuntime(t *testing.T) **bootstrap.Runtime {
	t.Helper()
	original := runtimeBuilder
	t.Cleanup(func() { runtimeBuilder = original })

	var captured *bootstrap.Runtime
	runtimeBuilder = func(ctx context.Context, opts bootstrap.Options) (*bootstrap.Runtime, error) {
		opts.Memory = true
		rt, err := bootstrap.BuildWithConfig(ctx, site.DefaultConfig(), opts)
		captured = rt
		return rt, err
	}
	return &captured
}

func TestTemplatesCommandListsCatalog(t *testing.T) {
	out, err := execute(t, "templates")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	for _, id := range []string{"blank", "article", "biography", "media", "landing"} {
		if !strings.Contains(out, id) {
			t.Fatalf("expected %s in output:\n%s", id, out)
		}
	}
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := execute(t, "hash-password", "correct horse")
	if err != nil {
		t.Fatalf("hash-password: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "$2") {
		t.Fatalf("expected bcrypt hash, got %q", out)
	}
}

func TestSeedImportsMarkdown(t *testing.T) {
	captured := useMemoryRuntime(t)

	dir := t.TempDir()
	doc := "---\nslug: about\ntitle_hi: परिचय\ntitle_en: About\npublished: true\n---\nहमारे बारे में\n"
	if err := os.WriteFile(filepath.Join(dir, "about.md"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	out, err := execute(t, "seed", "--content-dir", dir)
	if err != nil {
		t.Fatalf("seed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "created home") || !strings.Contains(out, "created about") {
		t.Fatalf("unexpected seed output:\n%s", out)
	}

	rt := *captured
	page, err := rt.Module.Pages().GetBySlug(context.Background(), "about")
	if err != nil {
		t.Fatalf("get about: %v", err)
	}
	if page.TitleEn != "About" {
		t.Fatalf("expected imported english title, got %q", page.TitleEn)
	}
}

func TestMigrateRequiresDatabase(t *testing.T) {
	useMemoryRuntime(t)

	if _, err := execute(t, "migrate"); err == nil || !strings.Contains(err.Error(), "database") {
		t.Fatalf("expected database required error, got %v", err)
	}
}
