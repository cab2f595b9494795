package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/i18n"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

const (
	fieldService = "service"
	fieldModule  = "module"
	fieldLocale  = "locale"
)

// Config captures the go-logger options exposed through site configuration.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
	// Service is stamped on every record when set.
	Service string
}

// Provider hands out go-logger children that satisfy interfaces.Logger.
// Every child carries its module name as a field so records stay attributable
// when the output format drops the logger name.
type Provider struct {
	root    *glog.BaseLogger
	service string
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

func NewProvider(cfg Config) (*Provider, error) {
	options, err := buildOptions(cfg)
	if err != nil {
		return nil, err
	}
	root := glog.NewLogger(options...)
	if focus := cleanNames(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root, service: strings.TrimSpace(cfg.Service)}, nil
}

// GetLogger returns the child logger for module. An empty module yields the
// root logger without a module field.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	fields := map[string]any{}
	if p.service != "" {
		fields[fieldService] = p.service
	}

	module = strings.TrimSpace(module)
	var inner glog.Logger = p.root
	if module != "" {
		inner = p.root.GetLogger(module)
		fields[fieldModule] = module
	}
	return newAdapter(inner).WithFields(fields)
}

func buildOptions(cfg Config) ([]glog.Option, error) {
	var options []glog.Option
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", glog.LoggerTypeJSON:
		options = append(options, glog.WithLoggerTypeJSON())
	case glog.LoggerTypeConsole:
		options = append(options, glog.WithLoggerTypeConsole())
	case glog.LoggerTypePretty:
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}
	if level := levelName(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}
	return options, nil
}

// adapter bridges go-logger to interfaces.Logger. Loggers that cannot hold
// fields get them appended as key/value pairs on every call instead.
type adapter struct {
	inner glog.Logger
	pairs []any
}

func newAdapter(inner glog.Logger) *adapter {
	return &adapter{inner: inner}
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, l.args(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, l.args(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, l.args(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.args(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, l.args(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, l.args(args)...) }

func (l *adapter) args(args []any) []any {
	if len(l.pairs) == 0 {
		return args
	}
	return append(slices.Clone(l.pairs), args...)
}

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	copied := maps.Clone(fields)
	if fl, ok := l.inner.(glog.FieldsLogger); ok {
		return &adapter{inner: fl.WithFields(copied), pairs: l.pairs}
	}

	pairs := slices.Clone(l.pairs)
	for _, key := range slices.Sorted(maps.Keys(copied)) {
		pairs = append(pairs, key, copied[key])
	}
	return &adapter{inner: l.inner, pairs: pairs}
}

// WithContext binds ctx and stamps the request locale when one is present.
func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	bound := &adapter{inner: l.inner.WithContext(ctx), pairs: l.pairs}
	if locale, ok := i18n.FromContext(ctx); ok {
		return bound.WithFields(map[string]any{fieldLocale: locale})
	}
	return bound
}

func levelName(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
