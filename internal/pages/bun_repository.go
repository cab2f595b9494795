package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
)

const pageNamespace = "page"

// CacheInvalidator is implemented by repositories whose cached rows are
// affected by page transactions.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// BunPageRepository implements PageRepository on bun.
type BunPageRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Page]
	cacheService cache.CacheService
	cachePrefix  string
	dependents   []CacheInvalidator
}

var _ PageRepository = (*BunPageRepository)(nil)

func NewBunPageRepository(db *bun.DB, dependents ...CacheInvalidator) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil, dependents...)
}

// NewBunPageRepositoryWithCache constructs a PageRepository backed by bun with optional caching.
// Dependents are invalidated after transactions that also write sections.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, dependents ...CacheInvalidator) *BunPageRepository {
	base := NewPageRepository(db)
	var svc cache.CacheService
	prefix := ""
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
		prefix = pageNamespace + cache.KeySeparator
	}
	return &BunPageRepository{
		db:           db,
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
		dependents:   dependents,
	}
}

func (r *BunPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapWriteError(err, record)
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// CreateWithSections inserts the page and its sections in one transaction.
func (r *BunPageRepository) CreateWithSections(ctx context.Context, record *Page, items []*sections.Section) (*Page, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return mapWriteError(err, record)
		}
		if len(items) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return fmt.Errorf("insert page sections: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := r.invalidateAll(ctx); err != nil {
		return nil, err
	}
	created, err := r.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	created.Sections = items
	return created, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return record, nil
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "page", slug)
	}
	return record, nil
}

func (r *BunPageRepository) List(ctx context.Context) ([]*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.slug ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return records, nil
}

func (r *BunPageRepository) Update(ctx context.Context, record *Page) (*Page, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"slug",
			"title_hi",
			"title_en",
			"meta_title_hi",
			"meta_title_en",
			"meta_description_hi",
			"meta_description_en",
			"og_image_url",
			"published",
			"typography",
			"updated_by",
			"updated_at",
		),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &SlugExistsError{Slug: record.Slug}
		}
		return nil, mapRepositoryError(err, "page", record.ID.String())
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the page's sections and then the page in one transaction.
func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*sections.Section)(nil)).
			Where("?TableAlias.page_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page sections: %w", err)
		}

		result, err := tx.NewDelete().
			Model((*Page)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("page delete rows affected: %w", err)
		}
		if affected == 0 {
			return &PageNotFoundError{Key: id.String()}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.invalidateAll(ctx)
}

// InvalidateCache drops cached page lookups.
func (r *BunPageRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunPageRepository) invalidateAll(ctx context.Context) error {
	if err := r.InvalidateCache(ctx); err != nil {
		return err
	}
	for _, dependent := range r.dependents {
		if dependent == nil {
			continue
		}
		if err := dependent.InvalidateCache(ctx); err != nil {
			return err
		}
	}
	return nil
}

func mapWriteError(err error, record *Page) error {
	if isUniqueViolation(err) && record != nil {
		return &SlugExistsError{Slug: record.Slug}
	}
	return fmt.Errorf("page repository error: %w", err)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &PageNotFoundError{Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
