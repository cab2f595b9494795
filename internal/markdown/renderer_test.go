package markdown

import (
	"strings"
	"testing"
)

func TestRendererProducesHTML(t *testing.T) {
	r := NewRenderer(Options{})
	out, err := r.RenderString("# नमस्ते\n\nThis is **bold** and https://example.com")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("unexpected html %q", out)
	}
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Fatalf("expected linkified url, got %q", out)
	}
}

func TestRendererStripsScripts(t *testing.T) {
	r := NewRenderer(Options{})
	out, err := r.RenderString("hello <script>alert(1)</script> <a href=\"javascript:alert(1)\">x</a>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script") || strings.Contains(out, "javascript:") {
		t.Fatalf("expected sanitised output, got %q", out)
	}
}

func TestCollectExtensionsSkipsUnknown(t *testing.T) {
	if got := collectExtensions([]string{"table", "TABLE", "bogus"}); len(got) != 1 {
		t.Fatalf("expected 1 extension, got %d", len(got))
	}
	if got := collectExtensions(nil); len(got) != 2 {
		t.Fatalf("expected default extensions, got %d", len(got))
	}
}
