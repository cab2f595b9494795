package render

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
)

var (
	ErrUnknownType       = errors.New("render: no renderer for section type")
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
	ErrRendererRequired  = errors.New("render: renderer is required")
)

// Renderer turns one section into HTML for locale.
type Renderer func(ctx context.Context, section *sections.Section, locale string) (template.HTML, error)

// Registry maps section types to renderers. Each type has at most one.
type Registry struct {
	mu        sync.RWMutex
	renderers map[sections.Type]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[sections.Type]Renderer)}
}

func (r *Registry) Register(t sections.Type, fn Renderer) error {
	if fn == nil {
		return ErrRendererRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRenderer, t)
	}
	r.renderers[t] = fn
	return nil
}

func (r *Registry) Lookup(t sections.Type) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.renderers[t]
	return fn, ok
}

// Types lists the registered types in name order.
func (r *Registry) Types() []sections.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]sections.Type, 0, len(r.renderers))
	for t := range r.renderers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Render dispatches section to its renderer. An unregistered type yields a
// placeholder together with an ErrUnknownType error.
func (r *Registry) Render(ctx context.Context, section *sections.Section, locale string) (template.HTML, error) {
	if section == nil {
		return "", fmt.Errorf("%w: nil section", ErrUnknownType)
	}
	fn, ok := r.Lookup(section.Type)
	if !ok {
		return Placeholder(section), fmt.Errorf("%w: %s", ErrUnknownType, section.Type)
	}
	return fn(ctx, section, locale)
}

// Placeholder is the markup emitted in place of a section that could not be
// rendered.
func Placeholder(section *sections.Section) template.HTML {
	name := "unknown"
	if section != nil && section.Type != "" {
		name = strings.ToLower(string(section.Type))
	}
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, name)
	return template.HTML(fmt.Sprintf(`<!-- section %s unavailable -->`, name))
}
