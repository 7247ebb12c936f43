package logger

import (
	"context"
	"testing"
)

func TestFromContext(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	ctx := WithLogger(context.Background(), l)
	FromContext(ctx).Info("from context")
	if buf.Len() == 0 {
		t.Error("FromContext() did not return the stored logger")
	}

	if FromContext(context.Background()) == nil {
		t.Error("FromContext() without logger should return the default")
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || ClientFromContext(ctx) != "" {
		t.Error("empty context should carry no values")
	}

	ctx = WithRequestID(ctx, "req-01HZ")
	ctx = WithClient(ctx, "a1b2c3d4e5f6")

	if got := RequestIDFromContext(ctx); got != "req-01HZ" {
		t.Errorf("RequestIDFromContext() = %q, want %q", got, "req-01HZ")
	}
	if got := ClientFromContext(ctx); got != "a1b2c3d4e5f6" {
		t.Errorf("ClientFromContext() = %q, want %q", got, "a1b2c3d4e5f6")
	}
}

func TestL(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		client    string
	}{
		{"no ids", "", ""},
		{"request id only", "req-1", ""},
		{"both", "req-2", "a1b2c3d4e5f6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newJSONLogger(t, "info")
			ctx := WithLogger(context.Background(), l)
			if tt.requestID != "" {
				ctx = WithRequestID(ctx, tt.requestID)
			}
			if tt.client != "" {
				ctx = WithClient(ctx, tt.client)
			}

			L(ctx).Info("test message")
			entry := decodeEntry(t, buf)

			if got, _ := entry["request_id"].(string); got != tt.requestID {
				t.Errorf("request_id = %q, want %q", got, tt.requestID)
			}
			if got, _ := entry["client"].(string); got != tt.client {
				t.Errorf("client = %q, want %q", got, tt.client)
			}
		})
	}
}
