// Package importer seeds pages from markdown documents and creates the
// default home page.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/identity"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/markdown"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/util"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

const (
	HomeSlug     = "home"
	HomeTemplate = "landing"
)

var (
	ErrPagesRequired    = errors.New("importer: page service is required")
	ErrSectionsRequired = errors.New("importer: section service is required")
	ErrSlugMissing      = errors.New("importer: front matter slug is required")
)

// Options tune a single import run.
type Options struct {
	DryRun  bool
	ActorID uuid.UUID
}

// Result lists the slugs handled by an import run. Errors holds per-document
// failures; other documents are still imported.
type Result struct {
	Created []string
	Skipped []string
	Errors  []error
}

func (r *Result) err() error {
	return errors.Join(r.Errors...)
}

type Option func(*Importer)

func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		i.logger = logging.OrNoOp(logger)
	}
}

// Importer creates pages and their RICHTEXT body from seed documents.
type Importer struct {
	pages    pages.Service
	sections sections.Service
	logger   interfaces.Logger
}

func New(pageService pages.Service, sectionService sections.Service, opts ...Option) (*Importer, error) {
	if pageService == nil {
		return nil, ErrPagesRequired
	}
	if sectionService == nil {
		return nil, ErrSectionsRequired
	}
	i := &Importer{
		pages:    pageService,
		sections: sectionService,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// ImportDirectory loads every document under dir and imports it.
func (i *Importer) ImportDirectory(ctx context.Context, loader *markdown.Loader, dir string, opts Options) (*Result, error) {
	docs, err := loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	return i.ImportDocuments(ctx, docs, opts)
}

// ImportDocuments creates one page per document in path order. Documents
// whose slug already exists are skipped untouched.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*markdown.Document, opts Options) (*Result, error) {
	result := &Result{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			break
		}
		slug := strings.TrimSpace(doc.FrontMatter.Slug)
		if slug == "" {
			result.Errors = append(result.Errors, fmt.Errorf("%w: %s", ErrSlugMissing, doc.Path))
			continue
		}

		created, err := i.importDocument(ctx, slug, doc, opts)
		switch {
		case err != nil:
			result.Errors = append(result.Errors, fmt.Errorf("importer: %s: %w", doc.Path, err))
		case created:
			result.Created = append(result.Created, slug)
		default:
			result.Skipped = append(result.Skipped, slug)
		}
	}

	i.logger.Info("importer.documents.complete",
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
	)
	return result, result.err()
}

func (i *Importer) importDocument(ctx context.Context, slug string, doc *markdown.Document, opts Options) (bool, error) {
	exists, err := i.exists(ctx, slug)
	if err != nil || exists || opts.DryRun {
		return false, err
	}

	meta := doc.FrontMatter
	page, err := i.pages.Create(ctx, pages.CreatePageRequest{
		ID:                identity.SeedPageUUID(slug),
		Slug:              slug,
		TitleHi:           util.FirstNonEmpty(meta.TitleHi, meta.TitleEn, slug),
		TitleEn:           meta.TitleEn,
		MetaTitleHi:       meta.MetaTitleHi,
		MetaTitleEn:       meta.MetaTitleEn,
		MetaDescriptionHi: meta.MetaDescriptionHi,
		MetaDescriptionEn: meta.MetaDescriptionEn,
		Published:         meta.Published,
		Typography:        meta.Typography,
		TemplateID:        meta.Template,
		CreatedBy:         opts.ActorID,
	})
	if err != nil {
		return false, err
	}

	if doc.Body != "" || strings.TrimSpace(meta.BodyEn) != "" {
		if err := i.applyBody(ctx, page.ID, doc.Body, strings.TrimSpace(meta.BodyEn)); err != nil {
			return true, err
		}
	}
	i.logger.Debug("importer.document.created", "slug", slug, "path", doc.Path)
	return true, nil
}

// applyBody fills the first RICHTEXT section the template created, or
// appends one when the template has none.
func (i *Importer) applyBody(ctx context.Context, pageID uuid.UUID, bodyHi, bodyEn string) error {
	content, err := sections.EncodeContent(sections.RichTextContent{BodyHi: bodyHi, BodyEn: bodyEn})
	if err != nil {
		return err
	}
	existing, err := i.sections.ListByPage(ctx, pageID)
	if err != nil {
		return err
	}
	for _, section := range existing {
		if section.Type == sections.TypeRichText {
			_, err := i.sections.Update(ctx, sections.UpdateSectionRequest{ID: section.ID, Content: content})
			return err
		}
	}
	_, err = i.sections.Create(ctx, sections.CreateSectionRequest{
		ID:      identity.SeedSectionUUID(pageID, len(existing)),
		PageID:  pageID,
		Type:    sections.TypeRichText,
		Content: content,
	})
	return err
}

// EnsureHome creates the published home page from the landing template when
// it does not exist yet.
func (i *Importer) EnsureHome(ctx context.Context, titleHi, titleEn string) (bool, error) {
	exists, err := i.exists(ctx, HomeSlug)
	if err != nil || exists {
		return false, err
	}
	_, err = i.pages.Create(ctx, pages.CreatePageRequest{
		ID:         identity.SeedPageUUID(HomeSlug),
		Slug:       HomeSlug,
		TitleHi:    util.FirstNonEmpty(titleHi, "मुख्य पृष्ठ"),
		TitleEn:    util.FirstNonEmpty(titleEn, "Home"),
		Published:  true,
		TemplateID: HomeTemplate,
	})
	if err != nil {
		return false, err
	}
	i.logger.Info("importer.home.created")
	return true, nil
}

func (i *Importer) exists(ctx context.Context, slug string) (bool, error) {
	_, err := i.pages.GetBySlug(ctx, slug)
	switch {
	case err == nil:
		return true, nil
	case pages.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

