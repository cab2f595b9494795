package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/composer"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/faults"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/i18n"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/pages"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/templates"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

var (
	ErrSessionSecretRequired = errors.New("http: session secret is required")
	ErrDependencyMissing     = errors.New("http: required dependency missing")
)

// PageComposer renders pages for the public routes and admin preview.
type PageComposer interface {
	RenderPage(ctx context.Context, slug, locale string) (*composer.RenderedPage, error)
	Preview(ctx context.Context, slug, locale string) (*composer.RenderedPage, error)
}

// TypographyResolver reports the effective typography of a page.
type TypographyResolver interface {
	Resolve(ctx context.Context, slug string) map[string]string
}

// Authenticator verifies admin credentials.
type Authenticator interface {
	Authenticate(email, password string) (interfaces.Session, error)
}

// Config holds transport settings. Zero values fall back to the defaults
// applied by New.
type Config struct {
	SessionName     string
	SessionSecret   string
	SessionMaxAge   time.Duration
	CookieSecure    bool
	UploadDir       string
	UploadURLPrefix string
	MaxUploadBytes  int64
	Locales         i18n.Config
	Tracing         bool
	ServiceName     string
}

// Dependencies are the services the routes call into.
type Dependencies struct {
	Pages         pages.Service
	Sections      sections.Service
	Settings      settings.Service
	Typography    TypographyResolver
	Composer      PageComposer
	Catalog       *templates.Catalog
	Authenticator Authenticator
	Storage       interfaces.FileStorage
	Commands      Commands
	Logger        interfaces.Logger
}

// Server owns the echo instance and the route handlers.
type Server struct {
	echo   *echo.Echo
	config Config
	deps   Dependencies
	logger interfaces.Logger
}

const (
	defaultSessionName   = "site_session"
	defaultSessionMaxAge = 12 * time.Hour
	defaultUploadPrefix  = "/uploads"
	defaultMaxUpload     = 10 << 20
)

// New builds the echo instance, installs middleware and registers every
// route.
func New(cfg Config, deps Dependencies) (*Server, error) {
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, ErrSessionSecretRequired
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if cfg.SessionName == "" {
		cfg.SessionName = defaultSessionName
	}
	if cfg.SessionMaxAge <= 0 {
		cfg.SessionMaxAge = defaultSessionMaxAge
	}
	if cfg.UploadURLPrefix == "" {
		cfg.UploadURLPrefix = defaultUploadPrefix
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUpload
	}
	if cfg.Locales.DefaultLocale == "" {
		cfg.Locales = i18n.Config{DefaultLocale: i18n.Hindi, Locales: []string{i18n.Hindi, i18n.English}}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		config: cfg,
		deps:   deps,
		logger: logging.OrNoOp(deps.Logger),
	}
	e.HTTPErrorHandler = s.httpErrorHandler
	s.setupMiddleware()
	s.registerRoutes()
	return s, nil
}

func (d Dependencies) validate() error {
	switch {
	case d.Pages == nil, d.Sections == nil, d.Settings == nil:
		return ErrDependencyMissing
	case d.Composer == nil, d.Typography == nil, d.Catalog == nil:
		return ErrDependencyMissing
	case d.Authenticator == nil:
		return ErrDependencyMissing
	}
	return d.Commands.validate()
}

// Handler exposes the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Echo returns the underlying echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http.server.start", "addr", addr)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http.server.shutdown")
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) setupMiddleware() {
	e := s.echo
	if s.config.Tracing {
		e.Use(otelecho.Middleware(s.serviceName()))
	}
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			requestLogger(s.logger, c).Debug("http.request",
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(s.sessionMiddleware())
	e.Use(s.loadSession)
	e.Use(cacheControl)
}

func (s *Server) registerRoutes() {
	e := s.echo

	if s.config.UploadDir != "" {
		e.Static(s.config.UploadURLPrefix, s.config.UploadDir)
	}

	e.POST("/admin/login", s.handleLogin)
	e.POST("/admin/logout", s.handleLogout)

	api := e.Group("/admin/api", s.requireSession)
	api.GET("/templates", s.handleTemplateList)

	api.GET("/pages", s.handlePageList)
	api.POST("/pages", s.handlePageCreate)
	api.GET("/pages/:id", s.handlePageGet)
	api.PATCH("/pages/:id", s.handlePageUpdate)
	api.DELETE("/pages/:id", s.handlePageDelete)
	api.GET("/pages/:id/preview", s.handlePagePreview)

	api.GET("/pages/:id/sections", s.handleSectionList)
	api.POST("/pages/:id/sections", s.handleSectionCreate)
	api.POST("/pages/:id/sections/renumber", s.handleSectionRenumber)
	api.PATCH("/sections/:id", s.handleSectionUpdate)
	api.DELETE("/sections/:id", s.handleSectionDelete)
	api.POST("/sections/:id/move", s.handleSectionMove)

	api.GET("/typography", s.handleTypography)
	api.GET("/settings", s.handleSettingList)
	api.PUT("/settings/:key", s.handleSettingUpsert)
	api.DELETE("/settings/:key", s.handleSettingDelete)

	api.POST("/uploads", s.handleUpload, middleware.BodyLimit(bodyLimit(s.config.MaxUploadBytes)))

	e.GET("/", s.handleHome)
	e.GET("/:slug", s.handlePage)
}

// httpErrorHandler renders JSON for admin routes and a plain status page
// elsewhere. Store failures are logged with the request fields.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		requestLogger(s.logger, c).Error("http.request.failed", "status", status, "error", err)
	} else if payload.Error == string(faults.KindNotFound) || status == http.StatusNotFound {
		requestLogger(s.logger, c).Debug("http.request.not_found", "error", err)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/admin") {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, payload)
		return
	}
	_ = s.renderStatus(c, status)
}

func (s *Server) serviceName() string {
	if s.config.ServiceName != "" {
		return s.config.ServiceName
	}
	return "site"
}

func cacheControl(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/admin"):
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=300")
		}
		return next(c)
	}
}
