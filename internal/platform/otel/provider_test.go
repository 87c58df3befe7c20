package otel_test

import (
	"context"
	"testing"

	"github.com/Mouthless-Stoat/Leshy/internal/platform/otel"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  string
	}{
		{name: "no endpoint", endpoint: "", enabled: ""},
		{name: "explicitly disabled", endpoint: "http://localhost:4318", enabled: "false"},
		// A non-routable address keeps the exporter from sending anything.
		{name: "endpoint set", endpoint: "http://192.0.2.1:4318", enabled: "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LESHY_OTEL_ENDPOINT", tt.endpoint)
			t.Setenv("LESHY_OTEL_ENABLED", tt.enabled)

			shutdown, err := otel.Setup(context.Background(), "duel")
			if err != nil {
				t.Fatalf("setup: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown: %v", err)
			}
		})
	}
}

func TestSetupRejectsBadEnabledFlag(t *testing.T) {
	t.Setenv("LESHY_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("LESHY_OTEL_ENABLED", "maybe")

	shutdown, err := otel.Setup(context.Background(), "duel")
	if err == nil {
		t.Fatal("expected error for invalid LESHY_OTEL_ENABLED")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestSetupNoopShutdownIgnoresCancelledContext(t *testing.T) {
	t.Setenv("LESHY_OTEL_ENDPOINT", "")

	shutdown, err := otel.Setup(context.Background(), "duel")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
