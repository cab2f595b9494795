package pages

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/templates"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/typography"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

// Service manages pages and template instantiation.
type Service interface {
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]*Page, error)
	Update(ctx context.Context, req UpdatePageRequest) (*Page, error)
	SetPublished(ctx context.Context, req PublishPageRequest) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreatePageRequest captures the fields required to create a page. When
// TemplateID names a known blueprint its sections are created with the page.
type CreatePageRequest struct {
	ID                uuid.UUID
	Slug              string
	TitleHi           string
	TitleEn           string
	MetaTitleHi       string
	MetaTitleEn       string
	MetaDescriptionHi string
	MetaDescriptionEn string
	OGImageURL        string
	Published         bool
	Typography        map[string]string
	TemplateID        string
	CreatedBy         uuid.UUID
}

// Validate checks the minimum shape of the request.
func (r CreatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug, validation.Required, validation.By(slugRule)),
		validation.Field(&r.TitleHi, validation.Required),
		validation.Field(&r.Typography, validation.By(typographyRule)),
	)
}

// UpdatePageRequest replaces editable page fields. Typography nil leaves the
// stored overrides untouched; an empty map clears them.
type UpdatePageRequest struct {
	ID                uuid.UUID
	Slug              string
	TitleHi           string
	TitleEn           string
	MetaTitleHi       string
	MetaTitleEn       string
	MetaDescriptionHi string
	MetaDescriptionEn string
	OGImageURL        string
	Typography        map[string]string
	UpdatedBy         uuid.UUID
}

func (r UpdatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.By(requiredID)),
		validation.Field(&r.Slug, validation.Required, validation.By(slugRule)),
		validation.Field(&r.TitleHi, validation.Required),
		validation.Field(&r.Typography, validation.By(typographyRule)),
	)
}

type PublishPageRequest struct {
	ID        uuid.UUID
	Published bool
	UpdatedBy uuid.UUID
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logging.OrNoOp(logger)
	}
}

// WithCatalog replaces the built-in blueprint catalog.
func WithCatalog(catalog *templates.Catalog) ServiceOption {
	return func(s *service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

type service struct {
	repo    PageRepository
	catalog *templates.Catalog
	id      IDGenerator
	now     func() time.Time
	logger  interfaces.Logger
}

// NewService constructs a page service instance.
func NewService(repo PageRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:    repo,
		catalog: templates.Default(),
		id:      uuid.New,
		now:     time.Now,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreatePageRequest) (*Page, error) {
	req.Slug = strings.TrimSpace(req.Slug)
	req.TitleHi = strings.TrimSpace(req.TitleHi)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetBySlug(ctx, req.Slug); err == nil && existing != nil {
		return nil, &SlugExistsError{Slug: req.Slug}
	} else if err != nil && !IsNotFound(err) {
		return nil, err
	}

	blueprint := s.catalog.Resolve(req.TemplateID)
	id := req.ID
	if id == uuid.Nil {
		id = s.id()
	}
	now := s.now().UTC()
	record := &Page{
		ID:                id,
		Slug:              req.Slug,
		TitleHi:           req.TitleHi,
		TitleEn:           strings.TrimSpace(req.TitleEn),
		MetaTitleHi:       strings.TrimSpace(req.MetaTitleHi),
		MetaTitleEn:       strings.TrimSpace(req.MetaTitleEn),
		MetaDescriptionHi: strings.TrimSpace(req.MetaDescriptionHi),
		MetaDescriptionEn: strings.TrimSpace(req.MetaDescriptionEn),
		OGImageURL:        strings.TrimSpace(req.OGImageURL),
		Published:         req.Published,
		Typography:        cleanTypography(req.Typography),
		TemplateID:        blueprint.ID,
		CreatedBy:         req.CreatedBy,
		UpdatedBy:         req.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	items := make([]*sections.Section, 0, len(blueprint.Sections))
	for position, entry := range blueprint.Sections {
		items = append(items, &sections.Section{
			ID:        s.id(),
			PageID:    record.ID,
			Type:      entry.Type,
			Order:     position,
			Content:   entry.Content,
			Visible:   true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	created, err := s.repo.CreateWithSections(ctx, record, items)
	if err != nil {
		return nil, err
	}
	logging.WithFields(s.logger, map[string]any{
		"page_id":  created.ID,
		"slug":     created.Slug,
		"template": blueprint.ID,
		"sections": len(items),
	}).Info("pages.create.success")
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, ErrPageRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, value string) (*Page, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, &PageNotFoundError{}
	}
	return s.repo.GetBySlug(ctx, value)
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	req.Slug = strings.TrimSpace(req.Slug)
	req.TitleHi = strings.TrimSpace(req.TitleHi)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if req.Slug != existing.Slug {
		if other, err := s.repo.GetBySlug(ctx, req.Slug); err == nil && other != nil && other.ID != existing.ID {
			return nil, &SlugExistsError{Slug: req.Slug}
		} else if err != nil && !IsNotFound(err) {
			return nil, err
		}
	}

	existing.Slug = req.Slug
	existing.TitleHi = req.TitleHi
	existing.TitleEn = strings.TrimSpace(req.TitleEn)
	existing.MetaTitleHi = strings.TrimSpace(req.MetaTitleHi)
	existing.MetaTitleEn = strings.TrimSpace(req.MetaTitleEn)
	existing.MetaDescriptionHi = strings.TrimSpace(req.MetaDescriptionHi)
	existing.MetaDescriptionEn = strings.TrimSpace(req.MetaDescriptionEn)
	existing.OGImageURL = strings.TrimSpace(req.OGImageURL)
	if req.Typography != nil {
		existing.Typography = cleanTypography(req.Typography)
	}
	existing.UpdatedBy = req.UpdatedBy
	existing.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info("pages.update.success", "page_id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

func (s *service) SetPublished(ctx context.Context, req PublishPageRequest) (*Page, error) {
	if req.ID == uuid.Nil {
		return nil, validation.Errors{
			"id": validation.NewError("pages.publish.id_required", ErrPageRequired.Error()),
		}
	}
	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing.Published == req.Published {
		return existing, nil
	}
	existing.Published = req.Published
	existing.UpdatedBy = req.UpdatedBy
	existing.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info("pages.publish.success", "page_id", updated.ID, "published", updated.Published)
	return updated, nil
}

// Delete removes the page and every section it owns.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPageRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("pages.delete.success", "page_id", id)
	return nil
}

func slugRule(value any) error {
	str, _ := value.(string)
	if str == "" {
		return nil
	}
	if slug.IsValid(str) || validUnicodeSlug(str) {
		return nil
	}
	return validation.NewError("pages.slug_invalid", ErrSlugInvalid.Error())
}

// validUnicodeSlug accepts hyphen-separated runs of letters, digits and
// combining marks in any script and case, so "About" and Devanagari slugs
// such as "परिचय" are routable.
func validUnicodeSlug(value string) bool {
	if value == "" || strings.TrimSpace(value) != value {
		return false
	}
	for _, segment := range strings.Split(value, "-") {
		if segment == "" {
			return false
		}
		for _, r := range segment {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.In(r, unicode.Mn, unicode.Mc) {
				return false
			}
		}
	}
	return true
}

func typographyRule(value any) error {
	overrides, _ := value.(map[string]string)
	if len(overrides) == 0 {
		return nil
	}
	if err := typography.ValidateOverrides(overrides); err != nil {
		if errors.Is(err, typography.ErrUnknownKey) {
			return validation.NewError("pages.typography_key_unknown", err.Error())
		}
		return validation.NewError("pages.typography_value_invalid", err.Error())
	}
	return nil
}

func requiredID(value any) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("pages.id_required", ErrPageRequired.Error())
	}
	return nil
}

// cleanTypography trims values and drops blank entries.
func cleanTypography(overrides map[string]string) map[string]string {
	out := make(map[string]string, len(overrides))
	for key, value := range overrides {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out[key] = trimmed
		}
	}
	return out
}
