// Package account implements the account rules: a unique, immutable khate
// number as the natural key, a mutable display name, and a cascading delete
// that removes the account's entries before the account itself.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirdwahi/ledger/internal/auth"
	"github.com/kirdwahi/ledger/internal/errs"
	"github.com/kirdwahi/ledger/internal/events"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
)

// Repo defines the account reads needed by the service.
type Repo interface {
	ListAccounts(ctx context.Context) ([]ledgerbook.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (ledgerbook.Account, error)
	// AccountByKhate resolves the natural key with a case-sensitive exact
	// match, returning errs.ErrNotFound when no account carries it.
	AccountByKhate(ctx context.Context, khate string) (ledgerbook.Account, error)
}

// Writer defines the account writes needed by the service.
type Writer interface {
	CreateAccount(ctx context.Context, a ledgerbook.Account) (ledgerbook.Account, error)
	UpdateAccount(ctx context.Context, a ledgerbook.Account) (ledgerbook.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// EntryCascade covers the entry operations the delete cascade needs. The
// store enforces no foreign keys, so the cascade is driven from here.
type EntryCascade interface {
	EntriesByAccount(ctx context.Context, khate string) ([]ledgerbook.Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

// CreateInput carries the caller-supplied fields for a new account.
type CreateInput struct {
	KhateNumber string
	Name        string
}

// UpdateInput carries the editable fields for an account update. A non-empty
// KhateNumber differing from the stored one is rejected as immutable.
type UpdateInput struct {
	ID          uuid.UUID
	KhateNumber string
	Name        string
}

// Service exposes validated account mutations and reads.
type Service interface {
	ValidateCreate(in CreateInput) error
	Create(ctx context.Context, cap auth.Capability, in CreateInput) (ledgerbook.Account, error)
	Update(ctx context.Context, cap auth.Capability, in UpdateInput) (ledgerbook.Account, error)
	Delete(ctx context.Context, cap auth.Capability, id uuid.UUID) error
	List(ctx context.Context) ([]ledgerbook.Account, error)
	Get(ctx context.Context, id uuid.UUID) (ledgerbook.Account, error)
	ByKhate(ctx context.Context, khate string) (ledgerbook.Account, error)
}

type service struct {
	repo    Repo
	writer  Writer
	entries EntryCascade
	events  events.Publisher
}

// New constructs the account service. A nil publisher disables events.
func New(repo Repo, writer Writer, entries EntryCascade, pub events.Publisher) Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &service{repo: repo, writer: writer, entries: entries, events: pub}
}

func (s *service) ValidateCreate(in CreateInput) error {
	if strings.TrimSpace(in.KhateNumber) == "" {
		return fmt.Errorf("%w: khate number is required", errs.ErrInvalid)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", errs.ErrInvalid)
	}
	return nil
}

func (s *service) Create(ctx context.Context, cap auth.Capability, in CreateInput) (ledgerbook.Account, error) {
	if !cap.CanWrite() {
		return ledgerbook.Account{}, errs.ErrForbidden
	}
	in.KhateNumber = strings.TrimSpace(in.KhateNumber)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.ValidateCreate(in); err != nil {
		return ledgerbook.Account{}, err
	}
	_, err := s.repo.AccountByKhate(ctx, in.KhateNumber)
	switch {
	case err == nil:
		return ledgerbook.Account{}, fmt.Errorf("%w: %s", errs.ErrDuplicateKhate, in.KhateNumber)
	case !errors.Is(err, errs.ErrNotFound):
		return ledgerbook.Account{}, fmt.Errorf("check khate number: %w", err)
	}
	a := ledgerbook.Account{
		ID:          uuid.New(),
		KhateNumber: in.KhateNumber,
		Name:        in.Name,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := s.writer.CreateAccount(ctx, a)
	if err != nil {
		return ledgerbook.Account{}, fmt.Errorf("create account: %w", err)
	}
	_ = s.events.Publish(ctx, events.Event{Kind: events.KindAccountCreated, ID: created.ID.String(), KhateNumber: created.KhateNumber, At: created.CreatedAt})
	return created, nil
}

// Update changes the display name. The khate number is the join key entries
// reference and never changes once set.
func (s *service) Update(ctx context.Context, cap auth.Capability, in UpdateInput) (ledgerbook.Account, error) {
	if !cap.CanWrite() {
		return ledgerbook.Account{}, errs.ErrForbidden
	}
	if in.ID == uuid.Nil {
		return ledgerbook.Account{}, fmt.Errorf("%w: account id is required", errs.ErrInvalid)
	}
	if strings.TrimSpace(in.Name) == "" {
		return ledgerbook.Account{}, fmt.Errorf("%w: name is required", errs.ErrInvalid)
	}
	current, err := s.repo.GetAccount(ctx, in.ID)
	if err != nil {
		return ledgerbook.Account{}, err
	}
	if in.KhateNumber != "" && in.KhateNumber != current.KhateNumber {
		return ledgerbook.Account{}, fmt.Errorf("%w: khate number cannot change", errs.ErrImmutable)
	}
	current.Name = strings.TrimSpace(in.Name)
	updated, err := s.writer.UpdateAccount(ctx, current)
	if err != nil {
		return ledgerbook.Account{}, fmt.Errorf("update account: %w", err)
	}
	_ = s.events.Publish(ctx, events.Event{Kind: events.KindAccountUpdated, ID: updated.ID.String(), KhateNumber: updated.KhateNumber, At: time.Now().UTC()})
	return updated, nil
}

// Delete removes the account and every entry referencing its khate number.
// Entries go first so an interrupted cascade never leaves entries pointing at
// a deleted account; the whole operation is safe to retry after a partial
// failure.
func (s *service) Delete(ctx context.Context, cap auth.Capability, id uuid.UUID) error {
	if !cap.CanWrite() {
		return errs.ErrForbidden
	}
	acc, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	entries, err := s.entries.EntriesByAccount(ctx, acc.KhateNumber)
	if err != nil {
		return fmt.Errorf("list entries for cascade: %w", err)
	}
	for _, e := range entries {
		if err := s.entries.DeleteEntry(ctx, e.ID); err != nil && !errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("cascade delete entry %s: %w", e.ID, err)
		}
	}
	if err := s.writer.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	_ = s.events.Publish(ctx, events.Event{Kind: events.KindAccountDeleted, ID: id.String(), KhateNumber: acc.KhateNumber, At: time.Now().UTC()})
	return nil
}

func (s *service) List(ctx context.Context) ([]ledgerbook.Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledgerbook.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *service) ByKhate(ctx context.Context, khate string) (ledgerbook.Account, error) {
	return s.repo.AccountByKhate(ctx, khate)
}
