package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/auth"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands"
	pagescmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/pages"
	sectionscmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/sections"
	settingscmd "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/commands/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/composer"
	httpapi "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/http"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/i18n"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/importer"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging/gologger"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/markdown"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/render"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/runtimeconfig"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/storage"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/templates"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/typography"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

// ErrContainerRequired is returned when a façade is used without a container.
var ErrContainerRequired = errors.New("di: container is required")

// Container wires repositories, services and adapters from a site config.
// Without a bun handle every repository is in memory.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
	auth           interfaces.AuthService
	fileStorage    interfaces.FileStorage
	now            func() time.Time

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	sectionRepo sections.SectionRepository
	pageRepo    pages.PageRepository
	settingRepo settings.SettingRepository

	catalog   *templates.Catalog
	registry  *settings.KeyRegistry
	locales   i18n.Config
	markdown  *markdown.Renderer
	renderers *render.Registry

	pageSvc    pages.Service
	sectionSvc sections.Service
	settingSvc settings.Service
	typography *typography.Resolver
	composer   *composer.Composer
	importer   *importer.Importer
	commands   httpapi.Commands
}

// Option mutates the container before it is finalised.
type Option func(*Container)

func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider replaces the go-logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithAuth overrides the session source consulted by the admin commands.
func WithAuth(svc interfaces.AuthService) Option {
	return func(c *Container) {
		c.auth = svc
	}
}

func WithFileStorage(fs interfaces.FileStorage) Option {
	return func(c *Container) {
		c.fileStorage = fs
	}
}

// WithCatalog replaces the built-in template catalog.
func WithCatalog(catalog *templates.Catalog) Option {
	return func(c *Container) {
		c.catalog = catalog
	}
}

// WithNow overrides the clock used by the services (primarily for tests).
func WithNow(now func() time.Time) Option {
	return func(c *Container) {
		c.now = now
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		auth:     auth.ContextAuth{},
		catalog:  templates.Default(),
		registry: settings.NewKeyRegistry(),
		locales:  i18n.FromModuleConfig(cfg.DefaultLocale, cfg.Locales),
		now:      time.Now,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureServices(); err != nil {
		return nil, err
	}
	c.configureCommands()
	if err := c.configureImporter(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
			Service:   c.Config.Tracing.ServiceName,
		})
		if err != nil {
			return fmt.Errorf("di: logger: %w", err)
		}
		c.loggerProvider = provider
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "site.di")
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger.Warn("di.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		sectionRepo := sections.NewMemorySectionRepository()
		c.sectionRepo = sectionRepo
		c.pageRepo = pages.NewMemoryPageRepository(sectionRepo)
		c.settingRepo = settings.NewMemorySettingRepository()
		return
	}

	sectionRepo := sections.NewBunSectionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.sectionRepo = sectionRepo
	c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer, sectionRepo)
	c.settingRepo = settings.NewBunSettingRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.logger.Info("di.repositories.bun", "driver", c.Config.Storage.Driver, "cache", c.cacheService != nil)
}

func (c *Container) configureServices() error {
	provider := c.loggerProvider

	c.pageSvc = pages.NewService(c.pageRepo,
		pages.WithCatalog(c.catalog),
		pages.WithNow(c.now),
		pages.WithLogger(logging.PagesLogger(provider)),
	)
	c.sectionSvc = sections.NewService(c.sectionRepo,
		sections.WithNow(c.now),
		sections.WithLogger(logging.SectionsLogger(provider)),
		sections.WithPageLookup(func(ctx context.Context, pageID uuid.UUID) error {
			_, err := c.pageRepo.GetByID(ctx, pageID)
			return err
		}),
	)
	c.settingSvc = settings.NewService(c.settingRepo,
		settings.WithRegistry(c.registry),
		settings.WithNow(c.now),
		settings.WithLogger(logging.SettingsLogger(provider)),
	)

	c.typography = typography.NewResolver(c.settingSvc,
		typography.WithSettingPrefix(c.Config.Typography.SettingPrefix),
		typography.WithOverrideSource(pages.TypographyOverrides(c.pageSvc)),
		typography.WithLogger(logging.TypographyLogger(provider)),
	)
	if err := c.typography.Register(c.registry); err != nil {
		return fmt.Errorf("di: register typography settings: %w", err)
	}

	c.markdown = markdown.NewRenderer(markdown.Options{})
	renderers, err := render.NewDefaultRegistry(c.markdown)
	if err != nil {
		return fmt.Errorf("di: renderers: %w", err)
	}
	c.renderers = renderers

	c.composer = composer.New(c.pageSvc, c.sectionSvc, c.typography, c.renderers,
		composer.WithLocales(c.locales),
		composer.WithLocaleProvider(i18n.NewContextProvider(c.locales)),
		composer.WithPageURLs(composer.NewPageURLs(c.Config.BaseURL, c.locales.Default())),
		composer.WithLogger(logging.ComposerLogger(provider)),
	)
	return nil
}

func (c *Container) configureCommands() {
	pageLog := commands.CommandLogger(c.loggerProvider, "pages")
	sectionLog := commands.CommandLogger(c.loggerProvider, "sections")
	settingLog := commands.CommandLogger(c.loggerProvider, "settings")
	timeout := c.Config.Commands.Timeout
	authSvc := c.auth

	c.commands = httpapi.Commands{
		CreatePage:       pagescmd.NewCreatePageHandler(c.pageSvc, authSvc, pageLog, commands.WithTimeout[pagescmd.CreatePageCommand](timeout)),
		UpdatePage:       pagescmd.NewUpdatePageHandler(c.pageSvc, authSvc, pageLog, commands.WithTimeout[pagescmd.UpdatePageCommand](timeout)),
		PublishPage:      pagescmd.NewPublishPageHandler(c.pageSvc, authSvc, pageLog, commands.WithTimeout[pagescmd.PublishPageCommand](timeout)),
		DeletePage:       pagescmd.NewDeletePageHandler(c.pageSvc, authSvc, pageLog, commands.WithTimeout[pagescmd.DeletePageCommand](timeout)),
		CreateSection:    sectionscmd.NewCreateSectionHandler(c.sectionSvc, authSvc, sectionLog, commands.WithTimeout[sectionscmd.CreateSectionCommand](timeout)),
		UpdateSection:    sectionscmd.NewUpdateSectionHandler(c.sectionSvc, authSvc, sectionLog, commands.WithTimeout[sectionscmd.UpdateSectionCommand](timeout)),
		DeleteSection:    sectionscmd.NewDeleteSectionHandler(c.sectionSvc, authSvc, sectionLog, commands.WithTimeout[sectionscmd.DeleteSectionCommand](timeout)),
		MoveSection:      sectionscmd.NewMoveSectionHandler(c.sectionSvc, authSvc, sectionLog, commands.WithTimeout[sectionscmd.MoveSectionCommand](timeout)),
		RenumberSections: sectionscmd.NewRenumberSectionsHandler(c.sectionSvc, authSvc, sectionLog, commands.WithTimeout[sectionscmd.RenumberSectionsCommand](timeout)),
		UpsertSetting:    settingscmd.NewUpsertSettingHandler(c.settingSvc, authSvc, settingLog, commands.WithTimeout[settingscmd.UpsertSettingCommand](timeout)),
		DeleteSetting:    settingscmd.NewDeleteSettingHandler(c.settingSvc, authSvc, settingLog, commands.WithTimeout[settingscmd.DeleteSettingCommand](timeout)),
	}
}

func (c *Container) configureImporter() error {
	imp, err := importer.New(c.pageSvc, c.sectionSvc, importer.WithLogger(logging.ImporterLogger(c.loggerProvider)))
	if err != nil {
		return fmt.Errorf("di: importer: %w", err)
	}
	c.importer = imp
	return nil
}

// FileStorage returns the upload store, creating the local disk adapter on
// first use.
func (c *Container) FileStorage() (interfaces.FileStorage, error) {
	if c.fileStorage != nil {
		return c.fileStorage, nil
	}
	server := c.Config.Server
	disk, err := storage.NewLocalDisk(server.UploadDir, server.UploadURLPrefix,
		storage.WithMaxBytes(server.MaxUploadBytes),
		storage.WithLogger(logging.ModuleLogger(c.loggerProvider, "site.storage")),
	)
	if err != nil {
		return nil, fmt.Errorf("di: file storage: %w", err)
	}
	c.fileStorage = disk
	return disk, nil
}

// Authenticator builds the credential checker for the configured admins.
func (c *Container) Authenticator() (*auth.Authenticator, error) {
	creds := make([]auth.Credential, 0, len(c.Config.Server.Admins))
	for _, admin := range c.Config.Server.Admins {
		creds = append(creds, auth.Credential{
			Email:        admin.Email,
			PasswordHash: admin.PasswordHash,
			Role:         interfaces.Role(strings.ToUpper(strings.TrimSpace(admin.Role))),
		})
	}
	return auth.NewAuthenticator(creds)
}

// HTTPServer assembles the echo server. The server config must pass
// ValidateServer.
func (c *Container) HTTPServer() (*httpapi.Server, error) {
	if err := c.Config.ValidateServer(); err != nil {
		return nil, err
	}
	authenticator, err := c.Authenticator()
	if err != nil {
		return nil, err
	}
	if len(c.Config.Server.Admins) == 0 {
		c.logger.Warn("di.http.no_admins")
	}
	fileStorage, err := c.FileStorage()
	if err != nil {
		return nil, err
	}
	server := c.Config.Server
	return httpapi.New(httpapi.Config{
		SessionName:     server.SessionName,
		SessionSecret:   server.SessionSecret,
		SessionMaxAge:   server.SessionMaxAge,
		CookieSecure:    server.CookieSecure,
		UploadDir:       server.UploadDir,
		UploadURLPrefix: server.UploadURLPrefix,
		MaxUploadBytes:  server.MaxUploadBytes,
		Locales:         c.locales,
		Tracing:         c.Config.Tracing.Enabled,
		ServiceName:     c.Config.Tracing.ServiceName,
	}, httpapi.Dependencies{
		Pages:         c.pageSvc,
		Sections:      c.sectionSvc,
		Settings:      c.settingSvc,
		Typography:    c.typography,
		Composer:      c.composer,
		Catalog:       c.catalog,
		Authenticator: authenticator,
		Storage:       fileStorage,
		Commands:      c.commands,
		Logger:        logging.HTTPLogger(c.loggerProvider),
	})
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }
func (c *Container) BunDB() *bun.DB                            { return c.bunDB }
func (c *Container) Catalog() *templates.Catalog               { return c.catalog }
func (c *Container) SettingsRegistry() *settings.KeyRegistry   { return c.registry }
func (c *Container) PageService() pages.Service                { return c.pageSvc }
func (c *Container) SectionService() sections.Service          { return c.sectionSvc }
func (c *Container) SettingService() settings.Service          { return c.settingSvc }
func (c *Container) TypographyResolver() *typography.Resolver  { return c.typography }
func (c *Container) Composer() *composer.Composer              { return c.composer }
func (c *Container) Importer() *importer.Importer              { return c.importer }
func (c *Container) Commands() httpapi.Commands                { return c.commands }
