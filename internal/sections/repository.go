package sections

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SectionRepository persists sections.
type SectionRepository interface {
	Create(ctx context.Context, record *Section) (*Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Section, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error)
	Update(ctx context.Context, record *Section) (*Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SwapOrder exchanges the order of two sections atomically.
	SwapOrder(ctx context.Context, first, second uuid.UUID, at time.Time) error
	// Renumber assigns orders 0..n-1 following ids, atomically.
	Renumber(ctx context.Context, pageID uuid.UUID, ids []uuid.UUID, at time.Time) error
}

// NewSectionRepository builds the go-repository-bun handle for sections.
func NewSectionRepository(db *bun.DB) repository.Repository[*Section] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Section]{
		NewRecord:          func() *Section { return &Section{} },
		GetID:              func(s *Section) uuid.UUID { return s.ID },
		SetID:              func(s *Section, id uuid.UUID) { s.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(s *Section) string { return s.ID.String() },
	})
}
