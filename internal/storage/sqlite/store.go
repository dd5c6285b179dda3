// Package sqlite provides a file-backed storage implementation over
// modernc.org/sqlite (pure Go, no cgo). It satisfies the same repository and
// writer interfaces as the memory and postgres stores, so a single-machine
// deployment can persist the ledger without running a database server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/kirdwahi/ledger/internal/errs"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
)

// Store wraps a database/sql handle over a sqlite file.
type Store struct {
	db *sql.DB
}

const dateLayout = "2006-01-02"

// Open creates the database file if needed, runs migrations, and returns a
// ready store.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ready pings the database to verify it is reachable.
func (s *Store) Ready(ctx context.Context) error { return s.db.PingContext(ctx) }

// --- Account reads ---

// ListAccounts returns all accounts ordered by khate number.
func (s *Store) ListAccounts(ctx context.Context) ([]ledgerbook.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, khate_number, name, created_at FROM accounts ORDER BY khate_number
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledgerbook.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAccount returns an account by ID.
func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (ledgerbook.Account, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, khate_number, name, created_at FROM accounts WHERE id = ?
    `, id.String())
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	return a, err
}

// AccountByKhate resolves an account by its natural key (exact match; sqlite
// TEXT comparison is case-sensitive by default, which is what the khate key
// requires).
func (s *Store) AccountByKhate(ctx context.Context, khate string) (ledgerbook.Account, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, khate_number, name, created_at FROM accounts WHERE khate_number = ?
    `, khate)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	return a, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (ledgerbook.Account, error) {
	var a ledgerbook.Account
	var id, created string
	if err := row.Scan(&id, &a.KhateNumber, &a.Name, &created); err != nil {
		return ledgerbook.Account{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ledgerbook.Account{}, fmt.Errorf("parse account id: %w", err)
	}
	a.ID = parsed
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		a.CreatedAt = t
	}
	return a, nil
}

// --- Account writes ---

// CreateAccount inserts a new account row.
func (s *Store) CreateAccount(ctx context.Context, a ledgerbook.Account) (ledgerbook.Account, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO accounts (id, khate_number, name, created_at) VALUES (?, ?, ?, ?)
    `, a.ID.String(), a.KhateNumber, a.Name, a.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return ledgerbook.Account{}, err
	}
	return a, nil
}

// UpdateAccount updates the mutable fields of an account.
func (s *Store) UpdateAccount(ctx context.Context, a ledgerbook.Account) (ledgerbook.Account, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE accounts SET name = ? WHERE id = ?
    `, a.Name, a.ID.String())
	if err != nil {
		return ledgerbook.Account{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// DeleteAccount removes an account row.
func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// --- Entry reads ---

const entryColumns = `id, entry_date, account_number, receipt_number, details, amount_paise, entry_type, created_at`

func scanEntry(row rowScanner) (ledgerbook.Entry, error) {
	var e ledgerbook.Entry
	var id, date, typ, created string
	var paise int64
	if err := row.Scan(&id, &date, &e.AccountNumber, &e.ReceiptNumber, &e.Details, &paise, &typ, &created); err != nil {
		return ledgerbook.Entry{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ledgerbook.Entry{}, fmt.Errorf("parse entry id: %w", err)
	}
	e.ID = parsed
	d, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return ledgerbook.Entry{}, fmt.Errorf("parse entry date: %w", err)
	}
	e.Date = d
	e.Amount = decimal.New(paise, -2)
	e.Type = ledgerbook.Type(typ)
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		e.CreatedAt = t
	}
	return e, nil
}

// ListEntries returns all entries ordered by date then creation time.
func (s *Store) ListEntries(ctx context.Context) ([]ledgerbook.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+entryColumns+` FROM entries ORDER BY entry_date, created_at
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// EntriesByAccount returns all entries referencing the khate number.
func (s *Store) EntriesByAccount(ctx context.Context, khate string) ([]ledgerbook.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+entryColumns+` FROM entries WHERE account_number = ? ORDER BY entry_date, created_at
    `, khate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]ledgerbook.Entry, error) {
	out := make([]ledgerbook.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEntry returns a single entry by ID.
func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (ledgerbook.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT `+entryColumns+` FROM entries WHERE id = ?
    `, id.String())
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledgerbook.Entry{}, errs.ErrNotFound
	}
	return e, err
}

// --- Entry writes ---

// CreateEntry inserts a new entry row.
func (s *Store) CreateEntry(ctx context.Context, e ledgerbook.Entry) (ledgerbook.Entry, error) {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO entries (id, entry_date, account_number, receipt_number, details, amount_paise, entry_type, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, e.ID.String(), e.Date.UTC().Format(dateLayout), e.AccountNumber, e.ReceiptNumber,
		e.Details, e.Amount.Round(2).Shift(2).IntPart(), string(e.Type), e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return ledgerbook.Entry{}, err
	}
	return e, nil
}

// UpdateEntry rewrites the mutable fields of an entry.
func (s *Store) UpdateEntry(ctx context.Context, e ledgerbook.Entry) (ledgerbook.Entry, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE entries
        SET entry_date = ?, account_number = ?, receipt_number = ?, details = ?, amount_paise = ?, entry_type = ?
        WHERE id = ?
    `, e.Date.UTC().Format(dateLayout), e.AccountNumber, e.ReceiptNumber, e.Details,
		e.Amount.Round(2).Shift(2).IntPart(), string(e.Type), e.ID.String())
	if err != nil {
		return ledgerbook.Entry{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledgerbook.Entry{}, errs.ErrNotFound
	}
	return e, nil
}

// DeleteEntry removes an entry row.
func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
