package logging

import (
	"context"
	"testing"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "site.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	recorder := &recordingLogger{}
	provider := &stubProvider{logger: recorder}

	PagesLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != pagesModule {
		t.Fatalf("expected provider lookup for %q, got %v", pagesModule, provider.requested)
	}
	if len(recorder.fields) != 1 || recorder.fields[0]["module"] != pagesModule {
		t.Fatalf("expected module field, got %v", recorder.fields)
	}
}

func TestModuleLoggerDefaultsModuleName(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	ModuleLogger(provider, "")
	if provider.requested[0] != rootModule {
		t.Fatalf("expected root module, got %q", provider.requested[0])
	}
}

func TestWithFieldsCopiesInput(t *testing.T) {
	recorder := &recordingLogger{}
	fields := map[string]any{"slug": "about"}
	WithFields(recorder, fields)
	fields["slug"] = "home"
	if recorder.fields[0]["slug"] != "about" {
		t.Fatalf("expected copied fields, got %v", recorder.fields[0])
	}
	if WithFields(nil, fields) != nil {
		t.Fatalf("expected nil logger to pass through")
	}
}

func TestOrNoOp(t *testing.T) {
	if _, ok := OrNoOp(nil).(noopLogger); !ok {
		t.Fatalf("expected noop for nil logger")
	}
	recorder := &recordingLogger{}
	if OrNoOp(recorder) != recorder {
		t.Fatalf("expected logger to pass through")
	}
}
