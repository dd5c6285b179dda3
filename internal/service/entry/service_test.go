package entry

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

func setup() (*memory.Store, Service) {
	store := memory.New()
	store.SeedAccount(ledgerbook.Account{
		ID:          uuid.New(),
		KhateNumber: "101",
		Name:        "पाटील",
		CreatedAt:   time.Now().UTC(),
	})
	return store, New(store, store, store, nil)
}

func validInput() Input {
	return Input{
		Date:          time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC),
		AccountNumber: "101",
		ReceiptNumber: "प-1",
		Details:       "दूध विक्री",
		Amount:        decimal.RequireFromString("250.00"),
		Type:          ledgerbook.TypeJama,
	}
}

func TestCreate(t *testing.T) {
	_, svc := setup()
	created, err := svc.Create(context.Background(), auth.Admin(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	// time of day is normalized away
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !created.Date.Equal(want) {
		t.Fatalf("expected date %v, got %v", want, created.Date)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
}

func TestCreate_RoundsAmount(t *testing.T) {
	_, svc := setup()
	in := validInput()
	in.Amount = decimal.RequireFromString("99.999")
	created, err := svc.Create(context.Background(), auth.Admin(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Amount.StringFixed(2) != "100.00" {
		t.Fatalf("expected 100.00, got %s", created.Amount.StringFixed(2))
	}
}

func TestCreate_UnknownAccount(t *testing.T) {
	store, svc := setup()
	in := validInput()
	in.AccountNumber = "999"
	_, err := svc.Create(context.Background(), auth.Admin(), in)
	if !errors.Is(err, errs.ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount, got %v", err)
	}
	// a rejected create must not leave anything behind
	left, _ := store.ListEntries(context.Background())
	if len(left) != 0 {
		t.Fatalf("expected no entries, got %d", len(left))
	}
}

func TestValidateInput(t *testing.T) {
	_, svc := setup()
	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"zero date", func(in *Input) { in.Date = time.Time{} }},
		{"blank account", func(in *Input) { in.AccountNumber = "  " }},
		{"blank details", func(in *Input) { in.Details = "" }},
		{"zero amount", func(in *Input) { in.Amount = decimal.Zero }},
		{"negative amount", func(in *Input) { in.Amount = decimal.RequireFromString("-5") }},
		{"bad type", func(in *Input) { in.Type = "debit" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if err := svc.ValidateInput(in); !errors.Is(err, errs.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
	if err := svc.ValidateInput(validInput()); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestCreate_RequiresWriteCapability(t *testing.T) {
	_, svc := setup()
	_, err := svc.Create(context.Background(), auth.ReadOnly(), validInput())
	if !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdate_PreservesIdentityAndAllowsOrphanReference(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()
	created, err := svc.Create(ctx, auth.Admin(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// the referenced account no longer needs to exist on update
	in := validInput()
	in.AccountNumber = "999"
	in.Details = "दुरुस्त तपशील"
	updated, err := svc.Update(ctx, auth.Admin(), created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatal("update must not change the id")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update must not change the creation timestamp")
	}
	if updated.AccountNumber != "999" || updated.Details != "दुरुस्त तपशील" {
		t.Fatalf("unexpected entry after update: %+v", updated)
	}
}

func TestUpdate_UnknownEntry(t *testing.T) {
	_, svc := setup()
	_, err := svc.Update(context.Background(), auth.Admin(), uuid.New(), validInput())
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store, svc := setup()
	ctx := context.Background()
	created, err := svc.Create(ctx, auth.Admin(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, auth.Admin(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetEntry(ctx, created.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("entry should be gone, got %v", err)
	}
	if err := svc.Delete(ctx, auth.Admin(), created.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
}
