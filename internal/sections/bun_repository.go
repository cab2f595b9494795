package sections

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const sectionNamespace = "section"

// BunSectionRepository implements SectionRepository with optional caching.
type BunSectionRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Section]
	cacheService cache.CacheService
	cachePrefix  string
}

var _ SectionRepository = (*BunSectionRepository)(nil)

func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return NewBunSectionRepositoryWithCache(db, nil, nil)
}

// NewBunSectionRepositoryWithCache wraps the bun repository with
// go-repository-cache when both cache collaborators are supplied.
func NewBunSectionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSectionRepository {
	base := NewSectionRepository(db)
	var svc cache.CacheService
	prefix := ""
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
		prefix = sectionNamespace + cache.KeySeparator
	}
	return &BunSectionRepository{
		db:           db,
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunSectionRepository) Create(ctx context.Context, record *Section) (*Section, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("section repository error: %w", err)
	}
	return created, nil
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "section", id.String())
	}
	return record, nil
}

// ListByPage reads straight from the database so ordering writes made inside
// transactions are always observed.
func (r *BunSectionRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Section, error) {
	var records []*Section
	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.page_id = ?", pageID).
		OrderExpr("?TableAlias.sort_order ASC, ?TableAlias.created_at ASC, ?TableAlias.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("section repository error: %w", err)
	}
	return records, nil
}

// Update writes content and visibility. sort_order is owned by SwapOrder and
// Renumber, so the returned record carries the order currently stored.
func (r *BunSectionRepository) Update(ctx context.Context, record *Section) (*Section, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"content",
			"visible",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "section", record.ID.String())
	}

	var order int
	if err := r.db.NewSelect().
		Model((*Section)(nil)).
		Column("sort_order").
		Where("?TableAlias.id = ?", record.ID).
		Scan(ctx, &order); err != nil {
		return nil, fmt.Errorf("reload section order: %w", err)
	}
	updated.Order = order
	return updated, nil
}

func (r *BunSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*Section)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("section delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "section", Key: id.String()}
	}
	return r.InvalidateCache(ctx)
}

func (r *BunSectionRepository) SwapOrder(ctx context.Context, first, second uuid.UUID, at time.Time) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var rows []*Section
		if err := tx.NewSelect().
			Model(&rows).
			Where("?TableAlias.id = ? OR ?TableAlias.id = ?", first, second).
			Scan(ctx); err != nil {
			return fmt.Errorf("load sections for swap: %w", err)
		}
		byID := make(map[uuid.UUID]*Section, len(rows))
		for _, row := range rows {
			byID[row.ID] = row
		}
		a, ok := byID[first]
		if !ok {
			return &NotFoundError{Resource: "section", Key: first.String()}
		}
		b, ok := byID[second]
		if !ok {
			return &NotFoundError{Resource: "section", Key: second.String()}
		}

		if err := setOrder(ctx, tx, a.ID, b.Order, at); err != nil {
			return err
		}
		return setOrder(ctx, tx, b.ID, a.Order, at)
	})
	if err != nil {
		return err
	}
	return r.InvalidateCache(ctx)
}

func (r *BunSectionRepository) Renumber(ctx context.Context, pageID uuid.UUID, ids []uuid.UUID, at time.Time) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for position, id := range ids {
			result, err := tx.NewUpdate().
				Model((*Section)(nil)).
				Set("sort_order = ?", position).
				Set("updated_at = ?", at).
				Where("?TableAlias.id = ?", id).
				Where("?TableAlias.page_id = ?", pageID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("renumber section %s: %w", id, err)
			}
			if affected, err := result.RowsAffected(); err == nil && affected == 0 {
				return &NotFoundError{Resource: "section", Key: id.String()}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.InvalidateCache(ctx)
}

// InvalidateCache drops cached section lookups after writes that bypass the
// cached repository.
func (r *BunSectionRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func setOrder(ctx context.Context, tx bun.Tx, id uuid.UUID, order int, at time.Time) error {
	result, err := tx.NewUpdate().
		Model((*Section)(nil)).
		Set("sort_order = ?", order).
		Set("updated_at = ?", at).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update section order: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("section order rows affected: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("update section order: expected 1 row, got %d", affected)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
