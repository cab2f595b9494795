package settings

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SettingRepository persists settings by key.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	ListByPrefix(ctx context.Context, prefix string) ([]*Setting, error)
	Upsert(ctx context.Context, record *Setting) (*Setting, error)
	Delete(ctx context.Context, key string) error
}

// NewSettingRepository builds the go-repository-bun handle for settings,
// identified by key.
func NewSettingRepository(db *bun.DB) repository.Repository[*Setting] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Setting]{
		NewRecord:          func() *Setting { return &Setting{} },
		GetID:              func(s *Setting) uuid.UUID { return s.ID },
		SetID:              func(s *Setting, id uuid.UUID) { s.ID = id },
		GetIdentifier:      func() string { return "setting_key" },
		GetIdentifierValue: func(s *Setting) string { return s.Key },
	})
}
