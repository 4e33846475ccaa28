package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrAlreadyExists},
		{"fk violation", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.in, "citizen", "abc")
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("MapError(%v) = %v, want wrapping %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	wrapped := fmt.Errorf("query: %w", context.DeadlineExceeded)
	got := MapError(wrapped, "citation", "x")
	if !errors.Is(got, context.DeadlineExceeded) {
		t.Fatalf("deadline error should pass through, got %v", got)
	}
	if errors.Is(got, domain.ErrNotFound) {
		t.Fatal("context error must not map to not-found")
	}
}

func TestMapError_NotFoundCarriesID(t *testing.T) {
	got := MapError(pgx.ErrNoRows, "citizen", "1234")
	var nf *domain.NotFoundError
	if !errors.As(got, &nf) {
		t.Fatalf("expected NotFoundError, got %T", got)
	}
	if nf.Entity != "citizen" || nf.ID != "1234" {
		t.Errorf("NotFoundError = %+v, want citizen/1234", nf)
	}
}
