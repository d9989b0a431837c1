package requestctx

import (
	"context"
	"testing"
)

func TestRequestContextValues(t *testing.T) {
	ctx := context.Background()
	if GetRequestID(ctx) != "" || GetActor(ctx) != "" {
		t.Fatal("expected empty values on a bare context")
	}
	ctx = WithActor(WithRequestID(ctx, "req-1"), "admin")
	if got := GetRequestID(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %s", got)
	}
	if got := GetActor(ctx); got != "admin" {
		t.Fatalf("expected admin, got %s", got)
	}
}
