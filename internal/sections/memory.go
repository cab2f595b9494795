package sections

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/util"
)

// MemorySectionRepository provides an in-memory implementation of
// SectionRepository. Multi-record writes hold the lock for their whole
// duration so no intermediate state is observable.
type MemorySectionRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Section
}

var _ SectionRepository = (*MemorySectionRepository)(nil)

func NewMemorySectionRepository() *MemorySectionRepository {
	return &MemorySectionRepository{
		byID: make(map[uuid.UUID]*Section),
	}
}

func (r *MemorySectionRepository) Create(_ context.Context, record *Section) (*Section, error) {
	if record == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[record.ID]; exists {
		return nil, fmt.Errorf("section repository error: duplicate id %s", record.ID)
	}
	cloned := Clone(record)
	r.byID[cloned.ID] = cloned
	return Clone(cloned), nil
}

// InsertMany stores every record or none of them.
func (r *MemorySectionRepository) InsertMany(records []*Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uuid.UUID]struct{}, len(records))
	for _, record := range records {
		if record == nil {
			return fmt.Errorf("section repository error: nil record")
		}
		if _, exists := r.byID[record.ID]; exists {
			return fmt.Errorf("section repository error: duplicate id %s", record.ID)
		}
		if _, dup := seen[record.ID]; dup {
			return fmt.Errorf("section repository error: duplicate id %s", record.ID)
		}
		seen[record.ID] = struct{}{}
	}
	for _, record := range records {
		r.byID[record.ID] = Clone(record)
	}
	return nil
}

// DeleteByPage removes every section owned by pageID and reports how many
// were removed.
func (r *MemorySectionRepository) DeleteByPage(pageID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, record := range r.byID {
		if record.PageID == pageID {
			delete(r.byID, id)
			removed++
		}
	}
	return removed
}

func (r *MemorySectionRepository) GetByID(_ context.Context, id uuid.UUID) (*Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: id.String()}
	}
	return Clone(record), nil
}

func (r *MemorySectionRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Section, 0)
	for _, record := range r.byID {
		if record.PageID == pageID {
			out = append(out, Clone(record))
		}
	}
	SortForDisplay(out)
	return out, nil
}

func (r *MemorySectionRepository) Update(_ context.Context, record *Section) (*Section, error) {
	if record == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: record.ID.String()}
	}
	updated := Clone(existing)
	updated.Content = util.DeepCloneMap(record.Content)
	updated.Visible = record.Visible
	updated.UpdatedAt = record.UpdatedAt
	r.byID[updated.ID] = updated
	return Clone(updated), nil
}

func (r *MemorySectionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{Resource: "section", Key: id.String()}
	}
	delete(r.byID, id)
	return nil
}

func (r *MemorySectionRepository) SwapOrder(_ context.Context, first, second uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[first]
	if !ok {
		return &NotFoundError{Resource: "section", Key: first.String()}
	}
	b, ok := r.byID[second]
	if !ok {
		return &NotFoundError{Resource: "section", Key: second.String()}
	}
	a.Order, b.Order = b.Order, a.Order
	a.UpdatedAt = at
	b.UpdatedAt = at
	return nil
}

func (r *MemorySectionRepository) Renumber(_ context.Context, pageID uuid.UUID, ids []uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		record, ok := r.byID[id]
		if !ok || record.PageID != pageID {
			return &NotFoundError{Resource: "section", Key: id.String()}
		}
	}
	for position, id := range ids {
		record := r.byID[id]
		record.Order = position
		record.UpdatedAt = at
	}
	return nil
}
