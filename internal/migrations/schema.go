// Package migrations creates the site schema. Every statement is idempotent
// so Apply can run on each start.
package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

type index struct {
	name    string
	model   any
	columns []string
}

var indexes = []index{
	{name: "idx_pages_published", model: (*pages.Page)(nil), columns: []string{"published"}},
	{name: "idx_sections_page_order", model: (*sections.Section)(nil), columns: []string{"page_id", "sort_order"}},
}

// Apply creates tables and indexes that do not exist yet, in one transaction.
func Apply(ctx context.Context, db *bun.DB, logger interfaces.Logger) error {
	logger = logging.OrNoOp(logger)
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewCreateTable().Model((*pages.Page)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create pages: %w", err)
		}
		if _, err := tx.NewCreateTable().
			Model((*sections.Section)(nil)).
			IfNotExists().
			ForeignKey(`("page_id") REFERENCES "pages" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return fmt.Errorf("create sections: %w", err)
		}
		if _, err := tx.NewCreateTable().Model((*settings.Setting)(nil)).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create site_settings: %w", err)
		}
		for _, idx := range indexes {
			if _, err := tx.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.columns...).
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("create index %s: %w", idx.name, err)
			}
		}
		logger.Info("migrations.apply.success", "tables", 3, "indexes", len(indexes))
		return nil
	})
}

// Reset drops every site table. Sections go first so the foreign key never
// blocks the drop.
func Reset(ctx context.Context, db *bun.DB, logger interfaces.Logger) error {
	logger = logging.OrNoOp(logger)
	for _, model := range []any{(*sections.Section)(nil), (*pages.Page)(nil), (*settings.Setting)(nil)} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	logger.Warn("migrations.reset.success")
	return nil
}
