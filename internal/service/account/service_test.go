package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirdwahi/ledger/internal/auth"
	"github.com/kirdwahi/ledger/internal/errs"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
	"github.com/kirdwahi/ledger/internal/storage/memory"
)

func newService(store *memory.Store) Service {
	return New(store, store, store, nil)
}

func seedEntry(store *memory.Store, khate string) ledgerbook.Entry {
	e := ledgerbook.Entry{
		ID:            uuid.New(),
		Date:          time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		AccountNumber: khate,
		Details:       "test",
		Amount:        decimal.RequireFromString("10.00"),
		Type:          ledgerbook.TypeJama,
		CreatedAt:     time.Now().UTC(),
	}
	store.SeedEntry(e)
	return e
}

func TestCreate_DuplicateKhate(t *testing.T) {
	store := memory.New()
	svc := newService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, auth.Admin(), CreateInput{KhateNumber: "101", Name: "पाटील"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, auth.Admin(), CreateInput{KhateNumber: "101", Name: "दुसरे"})
	if !errors.Is(err, errs.ErrDuplicateKhate) {
		t.Fatalf("expected ErrDuplicateKhate, got %v", err)
	}
}

func TestCreate_KhateIsCaseSensitive(t *testing.T) {
	store := memory.New()
	svc := newService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, auth.Admin(), CreateInput{KhateNumber: "A1", Name: "पहिले"}); err != nil {
		t.Fatalf("create A1: %v", err)
	}
	if _, err := svc.Create(ctx, auth.Admin(), CreateInput{KhateNumber: "a1", Name: "दुसरे"}); err != nil {
		t.Fatalf("a1 should not collide with A1: %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(memory.New())
	ctx := context.Background()

	for _, in := range []CreateInput{
		{KhateNumber: "", Name: "x"},
		{KhateNumber: "  ", Name: "x"},
		{KhateNumber: "101", Name: ""},
	} {
		if _, err := svc.Create(ctx, auth.Admin(), in); !errors.Is(err, errs.ErrInvalid) {
			t.Fatalf("input %+v: expected ErrInvalid, got %v", in, err)
		}
	}
}

func TestCreate_RequiresWriteCapability(t *testing.T) {
	svc := newService(memory.New())
	_, err := svc.Create(context.Background(), auth.ReadOnly(), CreateInput{KhateNumber: "101", Name: "x"})
	if !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdate_KhateImmutable(t *testing.T) {
	store := memory.New()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, auth.Admin(), CreateInput{KhateNumber: "101", Name: "पाटील"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.Update(ctx, auth.Admin(), UpdateInput{ID: created.ID, KhateNumber: "999", Name: "नवीन नाव"})
	if !errors.Is(err, errs.ErrImmutable) {
		t.Fatalf("expected ErrImmutable, got %v", err)
	}

	// same khate (or empty) with a new name is fine
	updated, err := svc.Update(ctx, auth.Admin(), UpdateInput{ID: created.ID, Name: "नवीन नाव"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "नवीन नाव" || updated.KhateNumber != "101" {
		t.Fatalf("unexpected account after update: %+v", updated)
	}
}

func TestDelete_CascadesEntries(t *testing.T) {
	store := memory.New()
	svc := newService(store)
	ctx := context.Background()

	acc, err := svc.Create(ctx, auth.Admin(), CreateInput{KhateNumber: "101", Name: "पाटील"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	seedEntry(store, "101")
	seedEntry(store, "101")
	other := seedEntry(store, "202")

	if err := svc.Delete(ctx, auth.Admin(), acc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	left, err := store.ListEntries(ctx)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(left) != 1 || left[0].ID != other.ID {
		t.Fatalf("expected only the unrelated entry to survive, got %d", len(left))
	}
	if _, err := store.GetAccount(ctx, acc.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("account should be gone, got %v", err)
	}
}

// flakyCascade fails the first entry delete, then hands off to the store.
// A retried cascade must succeed even though some entries are already gone.
type flakyCascade struct {
	*memory.Store
	failed bool
}

func (f *flakyCascade) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if !f.failed {
		f.failed = true
		return errors.New("store unavailable")
	}
	return f.Store.DeleteEntry(ctx, id)
}

func TestDelete_PartialCascadeIsRetryable(t *testing.T) {
	store := memory.New()
	cascade := &flakyCascade{Store: store}
	svc := New(store, store, cascade, nil)
	ctx := context.Background()

	acc, err := svc.Create(ctx, auth.Admin(), CreateInput{KhateNumber: "101", Name: "पाटील"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	seedEntry(store, "101")
	seedEntry(store, "101")

	if err := svc.Delete(ctx, auth.Admin(), acc.ID); err == nil {
		t.Fatal("expected first delete to fail")
	}
	// account must still exist: entries go before the account
	if _, err := store.GetAccount(ctx, acc.ID); err != nil {
		t.Fatalf("account should survive a failed cascade: %v", err)
	}

	if err := svc.Delete(ctx, auth.Admin(), acc.ID); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	left, _ := store.ListEntries(ctx)
	if len(left) != 0 {
		t.Fatalf("expected no entries after retry, got %d", len(left))
	}
}

func TestDelete_RequiresWriteCapability(t *testing.T) {
	store := memory.New()
	svc := newService(store)
	err := svc.Delete(context.Background(), auth.ReadOnly(), uuid.New())
	if !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
