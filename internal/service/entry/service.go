// Package entry implements entry mutations: field validation on create and
// update, the khate existence check at creation time only, and deletion.
package entry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirdwahi/ledger/internal/auth"
	"github.com/kirdwahi/ledger/internal/errs"
	"github.com/kirdwahi/ledger/internal/events"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
)

// Repo defines the entry reads needed by the service.
type Repo interface {
	ListEntries(ctx context.Context) ([]ledgerbook.Entry, error)
	EntriesByAccount(ctx context.Context, khate string) ([]ledgerbook.Entry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (ledgerbook.Entry, error)
}

// AccountRepo is the account lookup used for the create-time reference check.
type AccountRepo interface {
	AccountByKhate(ctx context.Context, khate string) (ledgerbook.Account, error)
}

// Writer defines the entry writes needed by the service.
type Writer interface {
	CreateEntry(ctx context.Context, e ledgerbook.Entry) (ledgerbook.Entry, error)
	UpdateEntry(ctx context.Context, e ledgerbook.Entry) (ledgerbook.Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

// Input carries the mutable fields of an entry for create and update.
type Input struct {
	Date          time.Time
	AccountNumber string
	ReceiptNumber string
	Details       string
	Amount        decimal.Decimal
	Type          ledgerbook.Type
}

// Service exposes validated entry mutations and reads.
type Service interface {
	ValidateInput(in Input) error
	Create(ctx context.Context, cap auth.Capability, in Input) (ledgerbook.Entry, error)
	Update(ctx context.Context, cap auth.Capability, id uuid.UUID, in Input) (ledgerbook.Entry, error)
	Delete(ctx context.Context, cap auth.Capability, id uuid.UUID) error
	List(ctx context.Context) ([]ledgerbook.Entry, error)
	ListByAccount(ctx context.Context, khate string) ([]ledgerbook.Entry, error)
}

type service struct {
	repo     Repo
	accounts AccountRepo
	writer   Writer
	events   events.Publisher
}

// New constructs the entry service. A nil publisher disables events.
func New(repo Repo, accounts AccountRepo, writer Writer, pub events.Publisher) Service {
	if pub == nil {
		pub = events.Noop{}
	}
	return &service{repo: repo, accounts: accounts, writer: writer, events: pub}
}

func (s *service) ValidateInput(in Input) error {
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", errs.ErrInvalid)
	}
	if strings.TrimSpace(in.AccountNumber) == "" {
		return fmt.Errorf("%w: account number is required", errs.ErrInvalid)
	}
	if strings.TrimSpace(in.Details) == "" {
		return fmt.Errorf("%w: details are required", errs.ErrInvalid)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be > 0", errs.ErrInvalid)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: type must be jama or nave", errs.ErrInvalid)
	}
	return nil
}

// Create validates fields, then verifies the referenced khate number exists.
// The store enforces no foreign keys, so the check lives here, and it happens
// only at creation time.
func (s *service) Create(ctx context.Context, cap auth.Capability, in Input) (ledgerbook.Entry, error) {
	if !cap.CanWrite() {
		return ledgerbook.Entry{}, errs.ErrForbidden
	}
	if err := s.ValidateInput(in); err != nil {
		return ledgerbook.Entry{}, err
	}
	if _, err := s.accounts.AccountByKhate(ctx, in.AccountNumber); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ledgerbook.Entry{}, fmt.Errorf("%w: %s", errs.ErrNoAccount, in.AccountNumber)
		}
		return ledgerbook.Entry{}, fmt.Errorf("check account: %w", err)
	}
	e := ledgerbook.Entry{
		ID:            uuid.New(),
		Date:          ledgerbook.DateOnly(in.Date),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		ReceiptNumber: strings.TrimSpace(in.ReceiptNumber),
		Details:       in.Details,
		Amount:        in.Amount.Round(2),
		Type:          in.Type,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := s.writer.CreateEntry(ctx, e)
	if err != nil {
		return ledgerbook.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	_ = s.events.Publish(ctx, events.Event{Kind: events.KindEntryCreated, ID: created.ID.String(), KhateNumber: created.AccountNumber, At: created.CreatedAt})
	return created, nil
}

// Update applies the same field validation as Create but deliberately skips
// the khate existence check: an edit may keep a now-orphaned reference so
// unrelated fields stay correctable after an account removal. ID and
// CreatedAt are preserved.
func (s *service) Update(ctx context.Context, cap auth.Capability, id uuid.UUID, in Input) (ledgerbook.Entry, error) {
	if !cap.CanWrite() {
		return ledgerbook.Entry{}, errs.ErrForbidden
	}
	if id == uuid.Nil {
		return ledgerbook.Entry{}, fmt.Errorf("%w: entry id is required", errs.ErrInvalid)
	}
	if err := s.ValidateInput(in); err != nil {
		return ledgerbook.Entry{}, err
	}
	current, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return ledgerbook.Entry{}, err
	}
	current.Date = ledgerbook.DateOnly(in.Date)
	current.AccountNumber = strings.TrimSpace(in.AccountNumber)
	current.ReceiptNumber = strings.TrimSpace(in.ReceiptNumber)
	current.Details = in.Details
	current.Amount = in.Amount.Round(2)
	current.Type = in.Type
	updated, err := s.writer.UpdateEntry(ctx, current)
	if err != nil {
		return ledgerbook.Entry{}, fmt.Errorf("update entry: %w", err)
	}
	_ = s.events.Publish(ctx, events.Event{Kind: events.KindEntryUpdated, ID: updated.ID.String(), KhateNumber: updated.AccountNumber, At: time.Now().UTC()})
	return updated, nil
}

func (s *service) Delete(ctx context.Context, cap auth.Capability, id uuid.UUID) error {
	if !cap.CanWrite() {
		return errs.ErrForbidden
	}
	e, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if err := s.writer.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	_ = s.events.Publish(ctx, events.Event{Kind: events.KindEntryDeleted, ID: id.String(), KhateNumber: e.AccountNumber, At: time.Now().UTC()})
	return nil
}

func (s *service) List(ctx context.Context) ([]ledgerbook.Entry, error) {
	return s.repo.ListEntries(ctx)
}

func (s *service) ListByAccount(ctx context.Context, khate string) ([]ledgerbook.Entry, error) {
	return s.repo.EntriesByAccount(ctx, khate)
}
