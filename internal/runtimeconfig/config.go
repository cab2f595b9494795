package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrDefaultLocaleUnsupported = errors.New("site config: default locale must be one of the configured locales")
var ErrLocaleUnsupported = errors.New("site config: only hi and en locales are supported")
var ErrStorageDriverUnknown = errors.New("site config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("site config: storage dsn is required")
var ErrBaseURLInvalid = errors.New("site config: base url must be absolute")
var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")
var ErrSessionSecretTooShort = errors.New("site config: session secret must be at least 32 bytes")
var ErrAdminRoleInvalid = errors.New("site config: admin role is invalid")
var ErrAdminCredentialsRequired = errors.New("site config: admin email and password hash are required")
var ErrTracingEndpointRequired = errors.New("site config: tracing endpoint is required when tracing is enabled")
var ErrCacheTTLInvalid = errors.New("site config: cache ttl must be positive when cache is enabled")

const (
	DriverSQLite3  = "sqlite3"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Environment variables that override file values. Secrets are expected to
// arrive through these rather than the YAML file.
const (
	EnvSessionSecret = "SITE_SESSION_SECRET"
	EnvDatabaseDSN   = "SITE_DATABASE_DSN"
	EnvBaseURL       = "SITE_BASE_URL"
	EnvAddr          = "SITE_ADDR"
)

// Config aggregates runtime settings for the site binary.
type Config struct {
	SiteName      string           `yaml:"site_name"`
	BaseURL       string           `yaml:"base_url"`
	DefaultLocale string           `yaml:"default_locale"`
	Locales       []string         `yaml:"locales"`
	Storage       StorageConfig    `yaml:"storage"`
	Cache         CacheConfig      `yaml:"cache"`
	Logging       LoggingConfig    `yaml:"logging"`
	Server        ServerConfig     `yaml:"server"`
	Commands      CommandsConfig   `yaml:"commands"`
	Tracing       TracingConfig    `yaml:"tracing"`
	Typography    TypographyConfig `yaml:"typography"`
	Seed          SeedConfig       `yaml:"seed"`
}

// StorageConfig selects the SQL driver backing the content store.
type StorageConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// CacheConfig toggles the read-through repository cache.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

type LoggingConfig struct {
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// ServerConfig captures the HTTP surface and admin session options.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	SessionName     string        `yaml:"session_name"`
	SessionSecret   string        `yaml:"session_secret"`
	SessionMaxAge   time.Duration `yaml:"session_max_age"`
	CookieSecure    bool          `yaml:"cookie_secure"`
	UploadDir       string        `yaml:"upload_dir"`
	UploadURLPrefix string        `yaml:"upload_url_prefix"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	Admins          []AdminUser   `yaml:"admins"`
}

// AdminUser is a statically configured administrator. PasswordHash holds a
// bcrypt hash.
type AdminUser struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
	Role         string `yaml:"role"`
}

type CommandsConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// TracingConfig enables OTLP/HTTP trace export for the web surface.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// TypographyConfig controls the global settings lookup.
type TypographyConfig struct {
	SettingPrefix string `yaml:"setting_prefix"`
}

// SeedConfig points the seed command at markdown sources.
type SeedConfig struct {
	ContentDir string `yaml:"content_dir"`
}

// DefaultConfig returns a config that runs against a local sqlite file with
// Hindi as the primary language.
func DefaultConfig() Config {
	return Config{
		SiteName:      "site",
		BaseURL:       "http://localhost:8080",
		DefaultLocale: "hi",
		Locales:       []string{"hi", "en"},
		Storage: StorageConfig{
			Driver:       DriverSQLite3,
			DSN:          "file:site.db?cache=shared&_fk=1",
			MaxOpenConns: 1,
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			SessionName:     "site_admin",
			SessionMaxAge:   12 * time.Hour,
			UploadDir:       "uploads",
			UploadURLPrefix: "/uploads",
			MaxUploadBytes:  10 << 20,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Tracing: TracingConfig{
			ServiceName: "site",
			SampleRatio: 1,
		},
		Typography: TypographyConfig{
			SettingPrefix: "typo_",
		},
		Seed: SeedConfig{
			ContentDir: "content",
		},
	}
}

// LoadFile reads YAML from path on top of DefaultConfig and applies
// environment overrides. An empty path yields defaults plus overrides.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("site config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("site config: decode %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

// ApplyEnv overrides secrets and deployment specific values.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if v, ok := lookup(EnvSessionSecret); ok && v != "" {
		cfg.Server.SessionSecret = v
	}
	if v, ok := lookup(EnvDatabaseDSN); ok && v != "" {
		cfg.Storage.DSN = v
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Server.Addr = v
	}
}

// Validate performs consistency checks. Server secrets are checked separately
// by ValidateServer since migrate and seed do not need them.
func (cfg Config) Validate() error {
	for _, locale := range cfg.Locales {
		if !isSupportedLocale(locale) {
			return fmt.Errorf("%w: %s", ErrLocaleUnsupported, locale)
		}
	}
	if !containsFold(cfg.Locales, cfg.DefaultLocale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnsupported, cfg.DefaultLocale)
	}
	if parsed, err := url.Parse(strings.TrimSpace(cfg.BaseURL)); err != nil || !parsed.IsAbs() {
		return fmt.Errorf("%w: %q", ErrBaseURLInvalid, cfg.BaseURL)
	}
	switch normalize(cfg.Storage.Driver) {
	case DriverSQLite3, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	if cfg.Tracing.Enabled && strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
		return ErrTracingEndpointRequired
	}
	return nil
}

// ValidateServer checks the options only the HTTP server needs.
func (cfg Config) ValidateServer() error {
	if len(cfg.Server.SessionSecret) < 32 {
		return ErrSessionSecretTooShort
	}
	for _, admin := range cfg.Server.Admins {
		if strings.TrimSpace(admin.Email) == "" || strings.TrimSpace(admin.PasswordHash) == "" {
			return ErrAdminCredentialsRequired
		}
		switch strings.ToUpper(strings.TrimSpace(admin.Role)) {
		case "", "SUPER_ADMIN", "ADMIN", "EDITOR":
		default:
			return fmt.Errorf("%w: %s", ErrAdminRoleInvalid, admin.Role)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}

func isSupportedLocale(locale string) bool {
	switch normalize(locale) {
	case "hi", "en":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
