// Package memory provides a simple in-memory implementation used for
// development and tests. It keeps code paths easy to follow while allowing a
// real DB to be plugged in later.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kirdwahi/ledger/internal/errs"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
)

// Store is an in-memory implementation of the repository and writer
// interfaces used by the services. It is guarded by an RWMutex for concurrent
// reads/writes. The khate index mirrors the lookup structure the services
// rely on, rebuilt eagerly on every account write.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]ledgerbook.Account
	entries  map[uuid.UUID]ledgerbook.Entry
	// byKhate maps KhateNumber -> account ID (case-sensitive exact key)
	byKhate map[string]uuid.UUID
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]ledgerbook.Account),
		entries:  make(map[uuid.UUID]ledgerbook.Entry),
		byKhate:  make(map[string]uuid.UUID),
	}
}

// SeedAccount inserts an account directly, for dev seeds and tests.
func (s *Store) SeedAccount(a ledgerbook.Account) {
	s.mu.Lock()
	s.accounts[a.ID] = a
	s.byKhate[a.KhateNumber] = a.ID
	s.mu.Unlock()
}

// SeedEntry inserts an entry directly, for tests.
func (s *Store) SeedEntry(e ledgerbook.Entry) {
	s.mu.Lock()
	s.entries[e.ID] = e
	s.mu.Unlock()
}

// Ready implements the readiness probe; the in-memory store is always ready.
func (s *Store) Ready(context.Context) error { return nil }

// --- Account reads ---

// ListAccounts returns all accounts sorted by khate number.
func (s *Store) ListAccounts(_ context.Context) ([]ledgerbook.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledgerbook.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KhateNumber < out[j].KhateNumber })
	return out, nil
}

// GetAccount returns an account by ID.
func (s *Store) GetAccount(_ context.Context, id uuid.UUID) (ledgerbook.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// AccountByKhate resolves an account by its natural key.
func (s *Store) AccountByKhate(_ context.Context, khate string) (ledgerbook.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKhate[khate]
	if !ok {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	return s.accounts[id], nil
}

// --- Account writes ---

// CreateAccount persists a new account.
func (s *Store) CreateAccount(_ context.Context, a ledgerbook.Account) (ledgerbook.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	s.byKhate[a.KhateNumber] = a.ID
	return a, nil
}

// UpdateAccount persists changes to an account.
func (s *Store) UpdateAccount(_ context.Context, a ledgerbook.Account) (ledgerbook.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; !ok {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	s.accounts[a.ID] = a
	s.byKhate[a.KhateNumber] = a.ID
	return a, nil
}

// DeleteAccount removes an account by ID.
func (s *Store) DeleteAccount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return errs.ErrNotFound
	}
	delete(s.accounts, id)
	delete(s.byKhate, a.KhateNumber)
	return nil
}

// --- Entry reads ---

// ListEntries returns all entries in unspecified order; callers re-sort.
func (s *Store) ListEntries(_ context.Context) ([]ledgerbook.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledgerbook.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

// EntriesByAccount returns all entries referencing the khate number.
func (s *Store) EntriesByAccount(_ context.Context, khate string) ([]ledgerbook.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledgerbook.Entry, 0)
	for _, e := range s.entries {
		if e.AccountNumber == khate {
			out = append(out, e)
		}
	}
	return out, nil
}

// GetEntry returns a single entry.
func (s *Store) GetEntry(_ context.Context, id uuid.UUID) (ledgerbook.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return ledgerbook.Entry{}, errs.ErrNotFound
	}
	return e, nil
}

// --- Entry writes ---

// CreateEntry persists a new entry.
func (s *Store) CreateEntry(_ context.Context, e ledgerbook.Entry) (ledgerbook.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
	return e, nil
}

// UpdateEntry replaces an existing entry by ID.
func (s *Store) UpdateEntry(_ context.Context, e ledgerbook.Entry) (ledgerbook.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; !ok {
		return ledgerbook.Entry{}, errs.ErrNotFound
	}
	s.entries[e.ID] = e
	return e, nil
}

// DeleteEntry removes an entry by ID.
func (s *Store) DeleteEntry(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}
