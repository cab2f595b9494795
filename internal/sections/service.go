package sections

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/util"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

// Service manages sections of a page, including reordering.
type Service interface {
	Create(ctx context.Context, req CreateSectionRequest) (*Section, error)
	Get(ctx context.Context, id uuid.UUID) (*Section, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error)
	Update(ctx context.Context, req UpdateSectionRequest) (*Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, req MoveSectionRequest) (*MoveResult, error)
	Renumber(ctx context.Context, pageID uuid.UUID) ([]*Section, error)
}

// CreateSectionRequest adds a section to a page. Content defaults to the
// type's default payload; Order defaults to one past the current last
// section; Visible defaults to true.
type CreateSectionRequest struct {
	ID      uuid.UUID
	PageID  uuid.UUID
	Type    Type
	Content map[string]any
	Visible *bool
	Order   *int
}

// UpdateSectionRequest changes content and/or visibility. Nil fields are left
// untouched. The type of a section is fixed at creation.
type UpdateSectionRequest struct {
	ID      uuid.UUID
	Content map[string]any
	Visible *bool
}

type MoveSectionRequest struct {
	ID        uuid.UUID
	Direction Direction
}

// MoveResult reports the outcome of a move. Moved is false when the section
// was already first (UP) or last (DOWN); Neighbor is nil in that case.
type MoveResult struct {
	Section  *Section
	Neighbor *Section
	Moved    bool
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// PageLookup confirms that a page exists before sections are attached to it.
type PageLookup func(ctx context.Context, pageID uuid.UUID) error

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

// WithPageLookup installs the existence check used by Create.
func WithPageLookup(lookup PageLookup) ServiceOption {
	return func(s *service) {
		s.pageLookup = lookup
	}
}

type service struct {
	repo       SectionRepository
	id         IDGenerator
	now        func() time.Time
	logger     interfaces.Logger
	pageLookup PageLookup
}

// NewService constructs a section service instance.
func NewService(repo SectionRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:   repo,
		id:     uuid.New,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateSectionRequest) (*Section, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}
	if s.pageLookup != nil {
		if err := s.pageLookup(ctx, req.PageID); err != nil {
			return nil, err
		}
	}

	content := req.Content
	if content == nil {
		defaults, err := DefaultContentMap(req.Type)
		if err != nil {
			return nil, err
		}
		content = defaults
	}
	if err := ValidateContent(req.Type, content); err != nil {
		return nil, err
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		existing, err := s.repo.ListByPage(ctx, req.PageID)
		if err != nil {
			return nil, err
		}
		order = nextOrder(existing)
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	id := req.ID
	if id == uuid.Nil {
		id = s.id()
	}
	now := s.now().UTC()
	record := &Section{
		ID:        id,
		PageID:    req.PageID,
		Type:      req.Type,
		Order:     order,
		Content:   util.DeepCloneMap(content),
		Visible:   visible,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	logging.WithFields(s.logger, map[string]any{
		"section_id": created.ID,
		"page_id":    created.PageID,
		"type":       created.Type,
		"order":      created.Order,
	}).Info("sections.create.success")
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Section, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error) {
	records, err := s.repo.ListByPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	SortForDisplay(records)
	return records, nil
}

func (s *service) Update(ctx context.Context, req UpdateSectionRequest) (*Section, error) {
	if req.ID == uuid.Nil {
		return nil, validation.Errors{
			"id": validation.NewError("sections.update.id_required", "id is required"),
		}
	}
	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		if err := ValidateContent(existing.Type, req.Content); err != nil {
			return nil, err
		}
		existing.Content = util.DeepCloneMap(req.Content)
	}
	if req.Visible != nil {
		existing.Visible = *req.Visible
	}
	existing.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("sections.update.success", "section_id", updated.ID)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sections.delete.success", "section_id", id)
	return nil
}

func validateCreate(req CreateSectionRequest) error {
	errs := validation.Errors{}
	if req.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("sections.create.page_id_required", "page_id is required")
	}
	if !req.Type.Valid() {
		errs["type"] = validation.NewError("sections.create.type_invalid", "type must be one of HERO, RICHTEXT, BIOGRAPHY, STATS, VIDEOS")
	}
	if req.Order != nil && *req.Order < 0 {
		errs["order"] = validation.NewError("sections.create.order_invalid", ErrOrderInvalid.Error())
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func nextOrder(existing []*Section) int {
	next := 0
	for _, record := range existing {
		if record.Order >= next {
			next = record.Order + 1
		}
	}
	return next
}
