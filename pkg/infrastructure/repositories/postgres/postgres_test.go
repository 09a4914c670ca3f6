package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/planforge/mrp/pkg/domain/entities"
)

func TestWithRetry_SecondAttemptSucceeds(t *testing.T) {
	ctx := context.Background()
	attempts := 0

	got, err := withRetry(ctx, "get material", func(ctx context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", fmt.Errorf("connection reset")
		}
		return "MAT-X", nil
	})
	if err != nil {
		t.Fatalf("withRetry failed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if got != "MAT-X" {
		t.Errorf("expected value from second attempt, got %q", got)
	}
}

func TestWithRetry_PersistentFailureSurfacesUnavailable(t *testing.T) {
	ctx := context.Background()
	attempts := 0
	cause := fmt.Errorf("connection refused")

	_, err := withRetry(ctx, "get order", func(ctx context.Context) (int, error) {
		attempts++
		return 0, cause
	})

	if attempts != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", attempts)
	}
	var unavailable *entities.DatabaseUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DatabaseUnavailableError, got %v", err)
	}
	if unavailable.Op != "get order" {
		t.Errorf("expected op 'get order', got %q", unavailable.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the underlying cause to be wrapped")
	}
}

func TestWithRetry_NotFoundIsNotRetried(t *testing.T) {
	ctx := context.Background()
	attempts := 0

	_, err := withRetry(ctx, "get material", func(ctx context.Context) (*entities.Material, error) {
		attempts++
		return nil, &entities.NotFoundError{Entity: "material", ID: "MAT-GHOST"}
	})

	if attempts != 1 {
		t.Errorf("expected 1 attempt for a domain miss, got %d", attempts)
	}
	var nf *entities.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError to pass through unwrapped, got %v", err)
	}
}

func TestWithRetry_CancelledContextIsNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	_, err := withRetry(ctx, "get order", func(ctx context.Context) (int, error) {
		attempts++
		cancel()
		return 0, ctx.Err()
	})

	if attempts != 1 {
		t.Errorf("expected 1 attempt after cancellation, got %d", attempts)
	}
	var unavailable *entities.DatabaseUnavailableError
	if errors.As(err, &unavailable) {
		t.Error("cancellation must not be reported as database unavailability")
	}
}

func TestWithRetry_NoErrorSingleAttempt(t *testing.T) {
	ctx := context.Background()
	attempts := 0

	got, err := withRetry(ctx, "get product", func(ctx context.Context) (int, error) {
		attempts++
		return 42, nil
	})
	if err != nil {
		t.Fatalf("withRetry failed: %v", err)
	}
	if attempts != 1 || got != 42 {
		t.Errorf("expected single successful attempt returning 42, got %d attempts, %d", attempts, got)
	}
}

func TestParseComponentType(t *testing.T) {
	tests := []struct {
		input   string
		want    entities.ComponentType
		wantErr bool
	}{
		{"material", entities.ComponentMaterial, false},
		{"product", entities.ComponentProduct, false},
		{"subassembly", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseComponentType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseComponentType(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseComponentType(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseComponentType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
