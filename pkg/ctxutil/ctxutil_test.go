package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

func TestUserRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithUser(context.Background(), id, domain.RoleOfficer)

	gotID, ok := UserIDFromCtx(ctx)
	if !ok || gotID != id {
		t.Fatalf("UserIDFromCtx = %v, %v; want %v, true", gotID, ok, id)
	}

	role, ok := RoleFromCtx(ctx)
	if !ok || role != domain.RoleOfficer {
		t.Fatalf("RoleFromCtx = %v, %v; want OFFICER, true", role, ok)
	}
}

func TestUserIDFromCtx_Empty(t *testing.T) {
	if _, ok := UserIDFromCtx(context.Background()); ok {
		t.Error("expected ok=false on empty context")
	}
	if _, ok := RoleFromCtx(context.Background()); ok {
		t.Error("expected ok=false on empty context")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("RequestIDFromCtx = %q, want %q", got, "req-123")
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("RequestIDFromCtx on empty ctx = %q, want empty", got)
	}
}
