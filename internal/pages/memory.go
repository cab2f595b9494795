package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
)

// MemoryPageRepository provides an in-memory PageRepository. Section writes
// go through the shared memory section repository so cascades and template
// instantiation stay all-or-nothing.
type MemoryPageRepository struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*Page
	bySlug   map[string]uuid.UUID
	sections *sections.MemorySectionRepository
}

var _ PageRepository = (*MemoryPageRepository)(nil)

func NewMemoryPageRepository(sectionRepo *sections.MemorySectionRepository) *MemoryPageRepository {
	if sectionRepo == nil {
		sectionRepo = sections.NewMemorySectionRepository()
	}
	return &MemoryPageRepository{
		byID:     make(map[uuid.UUID]*Page),
		bySlug:   make(map[string]uuid.UUID),
		sections: sectionRepo,
	}
}

func (r *MemoryPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	return r.CreateWithSections(ctx, record, nil)
}

func (r *MemoryPageRepository) CreateWithSections(_ context.Context, record *Page, items []*sections.Section) (*Page, error) {
	if record == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bySlug[record.Slug]; exists {
		return nil, &SlugExistsError{Slug: record.Slug}
	}
	if err := r.sections.InsertMany(items); err != nil {
		return nil, err
	}
	stored := clonePage(record)
	stored.Sections = nil
	r.byID[stored.ID] = stored
	r.bySlug[stored.Slug] = stored.ID

	out := clonePage(stored)
	if len(items) > 0 {
		out.Sections = make([]*sections.Section, len(items))
		for i, item := range items {
			out.Sections[i] = sections.Clone(item)
		}
	}
	return out, nil
}

func (r *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &PageNotFoundError{Key: id.String()}
	}
	return clonePage(record), nil
}

func (r *MemoryPageRepository) GetBySlug(_ context.Context, slug string) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[slug]
	if !ok {
		return nil, &PageNotFoundError{Key: slug}
	}
	return clonePage(r.byID[id]), nil
}

func (r *MemoryPageRepository) List(_ context.Context) ([]*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Page, 0, len(r.byID))
	for _, record := range r.byID {
		out = append(out, clonePage(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (r *MemoryPageRepository) Update(_ context.Context, record *Page) (*Page, error) {
	if record == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[record.ID]
	if !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}
	if owner, exists := r.bySlug[record.Slug]; exists && owner != record.ID {
		return nil, &SlugExistsError{Slug: record.Slug}
	}

	stored := clonePage(record)
	stored.Sections = nil
	stored.CreatedAt = current.CreatedAt
	stored.CreatedBy = current.CreatedBy
	stored.TemplateID = current.TemplateID
	if current.Slug != stored.Slug {
		delete(r.bySlug, current.Slug)
	}
	r.byID[stored.ID] = stored
	r.bySlug[stored.Slug] = stored.ID
	return clonePage(stored), nil
}

func (r *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.byID[id]
	if !ok {
		return &PageNotFoundError{Key: id.String()}
	}
	r.sections.DeleteByPage(id)
	delete(r.byID, id)
	delete(r.bySlug, record.Slug)
	return nil
}
