package tracing

import (
	"context"
	"testing"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/runtimeconfig"
)

func TestSetupDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown, err := Setup(context.Background(), runtimeconfig.TracingConfig{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSampleRatioClamps(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 1},
		{in: -0.5, want: 1},
		{in: 2, want: 1},
		{in: 0.25, want: 0.25},
	}
	for _, tc := range cases {
		if got := sampleRatio(runtimeconfig.TracingConfig{SampleRatio: tc.in}); got != tc.want {
			t.Fatalf("sampleRatio(%v): want %v got %v", tc.in, tc.want, got)
		}
	}
}
