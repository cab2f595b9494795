package typography

import (
	"context"
	"strings"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/settings"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

const consumerName = "typography"

// SettingsReader is the slice of the settings service the resolver needs.
type SettingsReader interface {
	ListByPrefix(ctx context.Context, prefix string) ([]*settings.Setting, error)
}

// OverrideSource returns the stored override map of the page with slug. It
// reports found=false when the page does not exist.
type OverrideSource func(ctx context.Context, slug string) (overrides map[string]string, found bool, err error)

// Resolver merges defaults, global settings and page overrides.
type Resolver struct {
	settings  SettingsReader
	overrides OverrideSource
	prefix    string
	logger    interfaces.Logger
}

type ResolverOption func(*Resolver)

// WithSettingPrefix changes the prefix of global typography settings.
func WithSettingPrefix(prefix string) ResolverOption {
	return func(r *Resolver) {
		if strings.TrimSpace(prefix) != "" {
			r.prefix = prefix
		}
	}
}

func WithOverrideSource(source OverrideSource) ResolverOption {
	return func(r *Resolver) {
		r.overrides = source
	}
}

func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logging.OrNoOp(logger)
	}
}

// NewResolver builds a resolver. A nil settings reader resolves from defaults
// and page overrides only.
func NewResolver(reader SettingsReader, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		settings: reader,
		prefix:   DefaultSettingPrefix,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prefix returns the global setting prefix in use.
func (r *Resolver) Prefix() string {
	return r.prefix
}

// Register records the resolver's setting keys, with value validation, in
// the shared settings registry.
func (r *Resolver) Register(registry *settings.KeyRegistry) error {
	defs := make([]settings.Definition, 0, len(specs))
	for _, spec := range specs {
		defs = append(defs, settings.Definition{
			Key:      spec.SettingKey(r.prefix),
			Consumer: consumerName,
			Validate: spec.Validate,
		})
	}
	return registry.RegisterDefinitions(defs...)
}

// Resolve returns effective typography for slug. An empty slug or a missing
// page resolves from settings and defaults. It never fails; lookup errors
// are logged and the affected layer is skipped.
func (r *Resolver) Resolve(ctx context.Context, slug string) map[string]string {
	var overrides map[string]string
	slug = strings.TrimSpace(slug)
	if slug != "" && r.overrides != nil {
		found, ok, err := r.overrides(ctx, slug)
		switch {
		case err != nil:
			r.logger.Warn("typography.page_overrides.failed", "slug", slug, "error", err)
		case ok:
			overrides = found
		}
	}
	return Merge(overrides, r.Global(ctx))
}

// Global returns the global setting layer keyed by style key. Store errors
// yield an empty layer.
func (r *Resolver) Global(ctx context.Context) map[string]string {
	out := make(map[string]string, len(specs))
	if r.settings == nil {
		return out
	}
	records, err := r.settings.ListByPrefix(ctx, r.prefix)
	if err != nil {
		r.logger.Warn("typography.settings.failed", "prefix", r.prefix, "error", err)
		return out
	}
	bySetting := make(map[string]string, len(records))
	for _, record := range records {
		if record != nil {
			bySetting[record.Key] = record.Value
		}
	}
	for _, spec := range specs {
		if value, ok := bySetting[spec.SettingKey(r.prefix)]; ok {
			out[string(spec.Key)] = value
		}
	}
	return out
}

// Merge resolves each recognised key: non-blank page override, then
// non-blank global value, then default. Unrecognised keys are dropped.
func Merge(overrides, global map[string]string) map[string]string {
	out := make(map[string]string, len(specs))
	for _, spec := range specs {
		key := string(spec.Key)
		switch {
		case strings.TrimSpace(overrides[key]) != "":
			out[key] = strings.TrimSpace(overrides[key])
		case strings.TrimSpace(global[key]) != "":
			out[key] = strings.TrimSpace(global[key])
		default:
			out[key] = spec.Default
		}
	}
	return out
}
