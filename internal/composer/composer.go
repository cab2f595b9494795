package composer

import (
	"context"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/i18n"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/render"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/typography"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/util"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

type PageReader interface {
	GetBySlug(ctx context.Context, slug string) (*pages.Page, error)
}

type SectionReader interface {
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*sections.Section, error)
}

// TypographySource supplies the global typography layer.
type TypographySource interface {
	Global(ctx context.Context) map[string]string
}

type SectionRenderer interface {
	Render(ctx context.Context, section *sections.Section, locale string) (template.HTML, error)
}

// RenderedSection is one section of a rendered page. Degraded marks a
// placeholder emitted in place of a section that failed to render.
type RenderedSection struct {
	ID       uuid.UUID     `json:"id"`
	Type     sections.Type `json:"type"`
	Order    int           `json:"order"`
	HTML     template.HTML `json:"html"`
	Degraded bool          `json:"degraded,omitempty"`
}

// RenderedPage is the read model handed to the page layout.
type RenderedPage struct {
	ID              uuid.UUID         `json:"id"`
	Slug            string            `json:"slug"`
	Locale          string            `json:"locale"`
	Title           string            `json:"title"`
	MetaTitle       string            `json:"meta_title"`
	MetaDescription string            `json:"meta_description"`
	OGImageURL      string            `json:"og_image_url,omitempty"`
	Published       bool              `json:"published"`
	Typography      map[string]string `json:"typography"`
	CSSVariables    template.CSS      `json:"css_variables"`
	Sections        []RenderedSection `json:"sections"`
	CanonicalURL    string            `json:"canonical_url,omitempty"`
	Alternates      map[string]string `json:"alternates,omitempty"`
}

type Option func(*Composer)

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Composer) {
		c.logger = logging.OrNoOp(logger)
	}
}

// WithPageURLs enables canonical and alternate URLs.
func WithPageURLs(urls *PageURLs) Option {
	return func(c *Composer) {
		c.urls = urls
	}
}

// WithLocaleProvider resolves the locale from the request context when
// RenderPage is called with a blank locale.
func WithLocaleProvider(provider interfaces.LocaleProvider) Option {
	return func(c *Composer) {
		c.localeProvider = provider
	}
}

func WithLocales(cfg i18n.Config) Option {
	return func(c *Composer) {
		c.locales = cfg
	}
}

// Composer renders stored pages. It never writes.
type Composer struct {
	pages      PageReader
	sections   SectionReader
	typography TypographySource
	renderer   SectionRenderer
	urls       *PageURLs
	locales    i18n.Config
	logger     interfaces.Logger

	localeProvider interfaces.LocaleProvider
}

func New(pageReader PageReader, sectionReader SectionReader, typo TypographySource, renderer SectionRenderer, opts ...Option) *Composer {
	c := &Composer{
		pages:      pageReader,
		sections:   sectionReader,
		typography: typo,
		renderer:   renderer,
		locales:    i18n.Config{DefaultLocale: i18n.Hindi, Locales: []string{i18n.Hindi, i18n.English}},
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.localeProvider == nil {
		c.localeProvider = i18n.NewContextProvider(c.locales)
	}
	return c
}

// RenderPage renders the published page with slug. Missing and unpublished
// pages both report a page-not-found error. A blank locale is taken from the
// request context through the configured locale provider.
func (c *Composer) RenderPage(ctx context.Context, slug, locale string) (*RenderedPage, error) {
	return c.render(ctx, slug, locale, false)
}

// Preview renders the page regardless of its published flag.
func (c *Composer) Preview(ctx context.Context, slug, locale string) (*RenderedPage, error) {
	return c.render(ctx, slug, locale, true)
}

func (c *Composer) render(ctx context.Context, slug, locale string, includeDrafts bool) (*RenderedPage, error) {
	page, err := c.pages.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !page.Published && !includeDrafts {
		return nil, &pages.PageNotFoundError{Key: slug}
	}

	if strings.TrimSpace(locale) == "" {
		locale = c.localeProvider.Locale(ctx)
	}
	locale = i18n.Normalize(locale)
	if !c.locales.Supports(locale) {
		locale = c.locales.Default()
	}

	var (
		stored []*sections.Section
		global map[string]string
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		records, err := c.sections.ListByPage(groupCtx, page.ID)
		if err != nil {
			return err
		}
		stored = records
		return nil
	})
	group.Go(func() error {
		if c.typography != nil {
			global = c.typography.Global(groupCtx)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	values := typography.Merge(page.Typography, global)
	visible := sections.VisibleOnly(stored)
	sections.SortForDisplay(visible)

	out := &RenderedPage{
		ID:              page.ID,
		Slug:            page.Slug,
		Locale:          locale,
		Title:           i18n.Pick(page.TitleHi, page.TitleEn, locale),
		MetaTitle:       i18n.Pick(util.FirstNonEmpty(page.MetaTitleHi, page.TitleHi), util.FirstNonEmpty(page.MetaTitleEn, page.TitleEn), locale),
		MetaDescription: i18n.Pick(page.MetaDescriptionHi, page.MetaDescriptionEn, locale),
		OGImageURL:      page.OGImageURL,
		Published:       page.Published,
		Typography:      values,
		CSSVariables:    template.CSS(typography.CSSVariables(values)),
		Sections:        make([]RenderedSection, 0, len(visible)),
	}
	for _, section := range visible {
		out.Sections = append(out.Sections, c.renderSection(ctx, page, section, locale))
	}

	if c.urls != nil {
		canonical, err := c.urls.PageURL(page.Slug, locale)
		if err != nil {
			c.logger.Warn("composer.urls.failed", "slug", page.Slug, "error", err)
		} else {
			out.CanonicalURL = canonical
			if alternates, err := c.urls.Alternates(page.Slug, c.locales.Locales); err == nil {
				out.Alternates = alternates
			}
		}
	}
	return out, nil
}

func (c *Composer) renderSection(ctx context.Context, page *pages.Page, section *sections.Section, locale string) RenderedSection {
	rendered := RenderedSection{ID: section.ID, Type: section.Type, Order: section.Order}
	html, err := c.renderer.Render(ctx, section, locale)
	if err != nil {
		logging.WithFields(c.logger.WithContext(ctx), map[string]any{
			"page_id":    page.ID,
			"section_id": section.ID,
			"type":       section.Type,
		}).Warn("composer.section.degraded", "error", err)
		rendered.HTML = render.Placeholder(section)
		rendered.Degraded = true
		return rendered
	}
	rendered.HTML = html
	return rendered
}

