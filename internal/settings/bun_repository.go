package settings

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

const settingNamespace = "setting"

// BunSettingRepository implements SettingRepository with optional caching of
// key lookups.
type BunSettingRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Setting]
	cacheService cache.CacheService
	cachePrefix  string
}

var _ SettingRepository = (*BunSettingRepository)(nil)

func NewBunSettingRepository(db *bun.DB) *BunSettingRepository {
	return NewBunSettingRepositoryWithCache(db, nil, nil)
}

func NewBunSettingRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSettingRepository {
	base := NewSettingRepository(db)
	var svc cache.CacheService
	prefix := ""
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
		prefix = settingNamespace + cache.KeySeparator
	}
	return &BunSettingRepository{
		db:           db,
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunSettingRepository) Get(ctx context.Context, key string) (*Setting, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, &NotFoundError{Key: key}
		}
		return nil, fmt.Errorf("setting repository error: %w", err)
	}
	return record, nil
}

// ListByPrefix returns settings whose key starts with prefix, sorted by key.
func (r *BunSettingRepository) ListByPrefix(ctx context.Context, prefix string) ([]*Setting, error) {
	var records []*Setting
	query := r.db.NewSelect().Model(&records).OrderExpr("?TableAlias.setting_key ASC")
	if prefix != "" {
		query = query.Where("substr(?TableAlias.setting_key, 1, ?) = ?", len(prefix), prefix)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("setting repository error: %w", err)
	}
	return records, nil
}

func (r *BunSettingRepository) Upsert(ctx context.Context, record *Setting) (*Setting, error) {
	if _, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (setting_key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_by = EXCLUDED.updated_by").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("setting repository error: %w", err)
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, record.Key)
}

func (r *BunSettingRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.NewDelete().
		Model((*Setting)(nil)).
		Where("?TableAlias.setting_key = ?", strings.TrimSpace(key)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Key: key}
	}
	return r.InvalidateCache(ctx)
}

// InvalidateCache drops cached setting lookups.
func (r *BunSettingRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}
