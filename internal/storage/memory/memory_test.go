package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirdwahi/ledger/internal/errs"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
)

func account(khate, name string) ledgerbook.Account {
	return ledgerbook.Account{ID: uuid.New(), KhateNumber: khate, Name: name, CreatedAt: time.Now().UTC()}
}

func TestAccountByKhate(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := account("101", "पाटील")
	s.SeedAccount(a)

	got, err := s.AccountByKhate(ctx, "101")
	if err != nil || got.ID != a.ID {
		t.Fatalf("lookup failed: %v %v", got, err)
	}
	if _, err := s.AccountByKhate(ctx, "999"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// exact, case-sensitive key
	s.SeedAccount(account("A1", "x"))
	if _, err := s.AccountByKhate(ctx, "a1"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("khate lookup should be case-sensitive, got %v", err)
	}
}

func TestListAccounts_SortedByKhate(t *testing.T) {
	s := New()
	s.SeedAccount(account("201", "b"))
	s.SeedAccount(account("101", "a"))
	s.SeedAccount(account("105", "c"))

	out, err := s.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 || out[0].KhateNumber != "101" || out[1].KhateNumber != "105" || out[2].KhateNumber != "201" {
		t.Fatalf("unexpected order: %+v", out)
	}
}

func TestDeleteAccount_FreesKhate(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := account("101", "पाटील")
	s.SeedAccount(a)

	if err := s.DeleteAccount(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.AccountByKhate(ctx, "101"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("khate index should be cleared, got %v", err)
	}
	if err := s.DeleteAccount(ctx, a.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("double delete should report ErrNotFound, got %v", err)
	}
}

func TestEntriesByAccount(t *testing.T) {
	s := New()
	ctx := context.Background()
	mk := func(khate string) ledgerbook.Entry {
		e := ledgerbook.Entry{
			ID:            uuid.New(),
			Date:          time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			AccountNumber: khate,
			Details:       "x",
			Amount:        decimal.RequireFromString("1.00"),
			Type:          ledgerbook.TypeJama,
		}
		s.SeedEntry(e)
		return e
	}
	mk("101")
	mk("101")
	mk("202")

	out, err := s.EntriesByAccount(ctx, "101")
	if err != nil || len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d (%v)", len(out), err)
	}
	out, err = s.EntriesByAccount(ctx, "999")
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty result, got %d (%v)", len(out), err)
	}
}

func TestEntryWrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	e := ledgerbook.Entry{
		ID:            uuid.New(),
		Date:          time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		AccountNumber: "101",
		Details:       "x",
		Amount:        decimal.RequireFromString("1.00"),
		Type:          ledgerbook.TypeJama,
	}
	if _, err := s.CreateEntry(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}
	e.Details = "y"
	updated, err := s.UpdateEntry(ctx, e)
	if err != nil || updated.Details != "y" {
		t.Fatalf("update: %v %v", updated, err)
	}
	missing := e
	missing.ID = uuid.New()
	if _, err := s.UpdateEntry(ctx, missing); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteEntry(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetEntry(ctx, e.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
