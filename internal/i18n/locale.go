package i18n

import (
	"context"
	"strings"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

const (
	Hindi   = "hi"
	English = "en"
)

type contextKey struct{}

// WithLocale stores the active locale on ctx.
func WithLocale(ctx context.Context, code string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, Normalize(code))
}

// FromContext returns the locale stored by WithLocale.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	code, ok := ctx.Value(contextKey{}).(string)
	return code, ok && code != ""
}

// ContextProvider reads the locale stored by WithLocale and falls back to the
// configured default.
type ContextProvider struct {
	config Config
}

var _ interfaces.LocaleProvider = ContextProvider{}

func NewContextProvider(cfg Config) ContextProvider {
	return ContextProvider{config: cfg}
}

func (p ContextProvider) Locale(ctx context.Context) string {
	if code, ok := FromContext(ctx); ok && p.config.Supports(code) {
		return code
	}
	return p.config.Default()
}

// Pick returns the field matching locale. English falls back to Hindi when the
// English value is blank; Hindi never falls back.
func Pick(hi, en, locale string) string {
	if Normalize(locale) == English && strings.TrimSpace(en) != "" {
		return en
	}
	return hi
}
