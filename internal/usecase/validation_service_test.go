package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
)

func TestValidationService_ValidateBatchPreservesOrder(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(4, nil)

	raws := []match.RawMatch{
		rawFixture("m-3", 300, "101", "202", 2, 1),
		rawFixture("m-1", 100, "101", "202", 0, 3),
		rawFixture("m-2", 200, "101", "202", 4, 4),
	}

	valid, invalid, err := svc.ValidateBatch(context.Background(), raws)
	if err != nil {
		t.Fatalf("ValidateBatch failed: %v", err)
	}
	if len(invalid) != 0 {
		t.Fatalf("expected no rejects, got %v", invalid)
	}
	wantOrder := []string{"m-3", "m-1", "m-2"}
	for i, m := range valid {
		if m.MatchID != wantOrder[i] {
			t.Fatalf("result %d: expected %s, got %s", i, wantOrder[i], m.MatchID)
		}
	}
}

func TestValidationService_RejectsAtomically(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(2, nil)

	good := rawFixture("m-ok", 100, "101", "202", 2, 1)
	bad := rawFixture("m-bad", 200, "101", "202", 1, 0)
	// Remove a required field from one player; the whole match must go.
	players := bad["players"].(map[string]any)["101"].(map[string]any)
	delete(players["p-101-1"].(map[string]any), "position")

	valid, invalid, err := svc.ValidateBatch(context.Background(), []match.RawMatch{good, bad})
	if err != nil {
		t.Fatalf("ValidateBatch failed: %v", err)
	}
	if len(valid) != 1 || valid[0].MatchID != "m-ok" {
		t.Fatalf("expected only m-ok to survive, got %d valid", len(valid))
	}
	if len(invalid) != 1 {
		t.Fatalf("expected one reject, got %d", len(invalid))
	}
	if invalid[0].Index != 1 || invalid[0].MatchID != "m-bad" {
		t.Fatalf("unexpected reject: %+v", invalid[0])
	}

	var fieldErr *match.FieldError
	if !errors.As(invalid[0].Unwrap(), &fieldErr) {
		t.Fatalf("expected FieldError, got %v", invalid[0].Unwrap())
	}
	if fieldErr.Kind != match.FieldMissing {
		t.Fatalf("expected missing-field kind, got %s", fieldErr.Kind)
	}
}

func TestValidationService_ValidateAllFailsClosed(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(2, nil)

	bad := rawFixture("m-bad", 200, "101", "202", 1, 0)
	clubs := bad["clubs"].(map[string]any)
	clubs["101"].(map[string]any)["teamSide"] = float64(7)

	_, err := svc.ValidateAll(context.Background(), []match.RawMatch{
		rawFixture("m-ok", 100, "101", "202", 2, 1),
		bad,
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestValidationService_EmptyBatch(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(2, nil)

	valid, invalid, err := svc.ValidateBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("ValidateBatch failed: %v", err)
	}
	if len(valid) != 0 || len(invalid) != 0 {
		t.Fatalf("expected empty result, got %d valid %d invalid", len(valid), len(invalid))
	}
}

func TestValidationService_StringCoercion(t *testing.T) {
	t.Parallel()

	svc := NewValidationService(1, nil)

	// goals and skshots arrive as string digits in the fixture already;
	// this run proves they coerce instead of rejecting.
	valid, err := svc.ValidateAll(context.Background(), []match.RawMatch{
		rawFixture("m-1", 100, "101", "202", 3, 2),
	})
	if err != nil {
		t.Fatalf("ValidateAll failed: %v", err)
	}
	club := valid[0].Clubs["101"]
	if club.Goals != 3 {
		t.Fatalf("expected coerced goals=3, got %d", club.Goals)
	}
	line := valid[0].Players["101"]["p-101-1"]
	if line.Shooting.OnGoal != 6 {
		t.Fatalf("expected coerced shots on goal=6, got %d", line.Shooting.OnGoal)
	}
}
