package site

import "github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/runtimeconfig"

var (
	ErrDefaultLocaleUnsupported = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrLocaleUnsupported        = runtimeconfig.ErrLocaleUnsupported
	ErrStorageDriverUnknown     = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrBaseURLInvalid           = runtimeconfig.ErrBaseURLInvalid
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrSessionSecretTooShort    = runtimeconfig.ErrSessionSecretTooShort
	ErrAdminRoleInvalid         = runtimeconfig.ErrAdminRoleInvalid
	ErrAdminCredentialsRequired = runtimeconfig.ErrAdminCredentialsRequired
	ErrTracingEndpointRequired  = runtimeconfig.ErrTracingEndpointRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config           = runtimeconfig.Config
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	ServerConfig     = runtimeconfig.ServerConfig
	AdminUser        = runtimeconfig.AdminUser
	CommandsConfig   = runtimeconfig.CommandsConfig
	TracingConfig    = runtimeconfig.TracingConfig
	TypographyConfig = runtimeconfig.TypographyConfig
	SeedConfig       = runtimeconfig.SeedConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file and applies environment overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
