package identity

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/doorsentry/core/internal/relay"
)

func testCoordinator(t *testing.T, emitter relay.Emitter) (*Coordinator, *SQLiteRepository) {
	t.Helper()
	repo := NewRepository(testDB(t))
	return NewCoordinator(repo, emitter, slog.Default()), repo
}

func TestStartEnrollment_SendsTrigger(t *testing.T) {
	emitter := &fakeEmitter{}
	coord, _ := testCoordinator(t, emitter)

	if err := coord.StartEnrollment(context.Background(), "Ada Lovelace"); err != nil {
		t.Fatalf("StartEnrollment() error = %v", err)
	}

	if len(emitter.sent) != 1 {
		t.Fatalf("sent %d commands, want 1", len(emitter.sent))
	}
	if got := emitter.sent[0].Encode(); got != "ENROLL:Ada Lovelace" {
		t.Errorf("command = %q, want ENROLL:Ada Lovelace", got)
	}
}

func TestStartEnrollment_NeverTouchesStore(t *testing.T) {
	emitter := &fakeEmitter{}
	repo := NewRepository(testDB(t))
	db := repo.db
	coord := NewCoordinator(repo, emitter, slog.Default())

	if err := coord.StartEnrollment(context.Background(), "Ada"); err != nil {
		t.Fatalf("StartEnrollment() error = %v", err)
	}

	if n := countIdentities(t, db); n != 0 {
		t.Errorf("identities rows = %d, want 0 (trigger leg must not write)", n)
	}
}

func TestStartEnrollment_EmptyName(t *testing.T) {
	emitter := &fakeEmitter{}
	coord, _ := testCoordinator(t, emitter)

	for _, name := range []string{"", "   "} {
		err := coord.StartEnrollment(context.Background(), name)
		if !errors.Is(err, ErrNameRequired) {
			t.Errorf("StartEnrollment(%q) error = %v, want ErrNameRequired", name, err)
		}
	}
	if len(emitter.sent) != 0 {
		t.Errorf("sent %d commands, want 0", len(emitter.sent))
	}
}

func TestStartEnrollment_RelayFailurePropagates(t *testing.T) {
	emitter := &fakeEmitter{err: relay.ErrSendFailed}
	coord, _ := testCoordinator(t, emitter)

	err := coord.StartEnrollment(context.Background(), "Ada")
	if !errors.Is(err, relay.ErrSendFailed) {
		t.Errorf("error = %v, want ErrSendFailed", err)
	}
}

func TestCompleteEnrollment_CreatesIdentity(t *testing.T) {
	coord, repo := testCoordinator(t, &fakeEmitter{})
	ctx := context.Background()

	identity, err := coord.CompleteEnrollment(ctx, "Ada Lovelace", "fp-0042", "captures/42.jpg")
	if err != nil {
		t.Fatalf("CompleteEnrollment() error = %v", err)
	}
	if identity.ID == "" {
		t.Error("identity should have a generated ID")
	}

	got, err := repo.GetByBiometricID(ctx, "fp-0042")
	if err != nil {
		t.Fatalf("GetByBiometricID() error = %v", err)
	}
	if got.DisplayName != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, want Ada Lovelace", got.DisplayName)
	}
	if got.ImageRef != "captures/42.jpg" {
		t.Errorf("ImageRef = %q, want captures/42.jpg", got.ImageRef)
	}
}

func TestCompleteEnrollment_Validation(t *testing.T) {
	coord, _ := testCoordinator(t, &fakeEmitter{})
	ctx := context.Background()

	if _, err := coord.CompleteEnrollment(ctx, "", "fp-0042", ""); !errors.Is(err, ErrNameRequired) {
		t.Errorf("error = %v, want ErrNameRequired", err)
	}
	if _, err := coord.CompleteEnrollment(ctx, "Ada", "", ""); !errors.Is(err, ErrBiometricIDRequired) {
		t.Errorf("error = %v, want ErrBiometricIDRequired", err)
	}
}

func TestCompleteEnrollment_DuplicateIsConflict(t *testing.T) {
	coord, _ := testCoordinator(t, &fakeEmitter{})
	ctx := context.Background()

	if _, err := coord.CompleteEnrollment(ctx, "Ada", "fp-0042", ""); err != nil {
		t.Fatalf("CompleteEnrollment() error = %v", err)
	}

	// A replayed callback must surface as a conflict, not vanish
	_, err := coord.CompleteEnrollment(ctx, "Ada", "fp-0042", "")
	if !errors.Is(err, ErrBiometricIDExists) {
		t.Errorf("error = %v, want ErrBiometricIDExists", err)
	}
}

func TestCompleteEnrollment_NoRelayTraffic(t *testing.T) {
	emitter := &fakeEmitter{}
	coord, _ := testCoordinator(t, emitter)

	if _, err := coord.CompleteEnrollment(context.Background(), "Ada", "fp-0042", ""); err != nil {
		t.Fatalf("CompleteEnrollment() error = %v", err)
	}
	if len(emitter.sent) != 0 {
		t.Errorf("sent %d commands, want 0 (callback leg must not emit)", len(emitter.sent))
	}
}
