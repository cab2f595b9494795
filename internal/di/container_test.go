package di_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/auth"
	pagescmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/pages"
	settingscmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/di"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/migrations"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/runtimeconfig"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/testsupport"
)

func adminContext() context.Context {
	return auth.WithSession(context.Background(), interfaces.Session{UserID: uuid.New(), Role: interfaces.RoleAdmin})
}

func exerciseContainer(t *testing.T, container *di.Container) {
	t.Helper()
	ctx := adminContext()
	cmds := container.Commands()

	if err := cmds.CreatePage.Execute(ctx, pagescmd.CreatePageCommand{
		PageID:     uuid.New(),
		Slug:       "about",
		TitleHi:    "परिचय",
		TitleEn:    "About",
		TemplateID: "landing",
		Published:  true,
	}); err != nil {
		t.Fatalf("create page: %v", err)
	}
	if err := cmds.UpsertSetting.Execute(ctx, settingscmd.UpsertSettingCommand{Key: "typo_site_base_size", Value: "18"}); err != nil {
		t.Fatalf("upsert setting: %v", err)
	}

	rendered, err := container.Composer().RenderPage(ctx, "about", "en")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if rendered.Title != "About" {
		t.Fatalf("expected english title, got %q", rendered.Title)
	}
	if len(rendered.Sections) == 0 {
		t.Fatalf("expected template sections to render")
	}
	if rendered.Typography["baseSize"] != "18" {
		t.Fatalf("expected global typography setting, got %q", rendered.Typography["baseSize"])
	}

	err = cmds.CreatePage.Execute(ctx, pagescmd.CreatePageCommand{PageID: uuid.New(), Slug: "about", TitleHi: "दूसरा"})
	if !errors.Is(err, pages.ErrSlugExists) {
		t.Fatalf("expected duplicate slug, got %v", err)
	}
}

func TestContainerMemoryMode(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.BunDB() != nil {
		t.Fatalf("expected memory mode without bun handle")
	}
	exerciseContainer(t, container)
}

func TestContainerBunMode(t *testing.T) {
	db, err := testsupport.NewBunSQLiteDB()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := migrations.Apply(context.Background(), db, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = true
	container, err := di.NewContainer(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	exerciseContainer(t, container)

	list, err := container.PageService().List(context.Background())
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "about" {
		t.Fatalf("expected one persisted page, got %d", len(list))
	}
}

func TestContainerRegistersTypographyKeys(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	keys := container.SettingsRegistry().Keys()
	found := false
	for _, key := range keys {
		if strings.HasPrefix(key, "typo_") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected typography keys registered, got %v", keys)
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Driver = "oracle"
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestContainerHTTPServerRequiresSecret(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, err := container.HTTPServer(); !errors.Is(err, runtimeconfig.ErrSessionSecretTooShort) {
		t.Fatalf("expected short secret error, got %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Server.SessionSecret = strings.Repeat("s", 32)
	cfg.Server.UploadDir = t.TempDir()
	container, err = di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("http server: %v", err)
	}
	if server.Handler() == nil {
		t.Fatalf("expected handler")
	}
}
