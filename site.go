package site

import (
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/composer"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/di"
	httpapi "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/http"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/importer"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/templates"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/typography"
)

// PageService exports the pages service contract.
type PageService = pages.Service

// SectionService exports the sections service contract.
type SectionService = sections.Service

// SettingService exports the settings service contract.
type SettingService = settings.Service

// RenderedPage is the read model returned by RenderPage.
type RenderedPage = composer.RenderedPage

// Module represents the top level site runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a site module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) Pages() PageService {
	return m.container.PageService()
}

func (m *Module) Sections() SectionService {
	return m.container.SectionService()
}

func (m *Module) Settings() SettingService {
	return m.container.SettingService()
}

// Templates returns the catalog used when pages are created.
func (m *Module) Templates() *templates.Catalog {
	return m.container.Catalog()
}

// Typography returns the resolver merging page overrides, settings and defaults.
func (m *Module) Typography() *typography.Resolver {
	return m.container.TypographyResolver()
}

// Composer returns the public page renderer.
func (m *Module) Composer() *composer.Composer {
	return m.container.Composer()
}

func (m *Module) Importer() *importer.Importer {
	return m.container.Importer()
}

// HTTPServer builds the echo server for the public and admin routes.
func (m *Module) HTTPServer() (*httpapi.Server, error) {
	if m == nil || m.container == nil {
		return nil, di.ErrContainerRequired
	}
	return m.container.HTTPServer()
}
