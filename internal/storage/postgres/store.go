// Package postgres provides a pgx-backed storage implementation satisfying
// the repository and writer interfaces used by the services.
//
// It is intentionally small and explicit: amounts are stored as bigint paise
// (two implied decimal places), dates as DATE, and the schema is ensured at
// Open time. No foreign key ties entries to accounts; the join by khate
// number is a service-level rule.
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kirdwahi/ledger/internal/errs"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

const schema = `
create table if not exists accounts (
    id          uuid primary key,
    khate_number text not null unique,
    name        text not null,
    created_at  timestamptz not null
);
create table if not exists entries (
    id             uuid primary key,
    entry_date     date not null,
    account_number text not null,
    receipt_number text not null default '',
    details        text not null,
    amount_paise   bigint not null,
    entry_type     text not null,
    created_at     timestamptz not null
);
create index if not exists entries_account_number_idx on entries (account_number);
create index if not exists entries_entry_date_idx on entries (entry_date);
`

// Open establishes a pgx pool using the provided connection string and
// ensures the expected schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

func paise(d decimal.Decimal) int64 { return d.Round(2).Shift(2).IntPart() }

func amount(paise int64) decimal.Decimal { return decimal.New(paise, -2) }

// --- Account reads ---

// ListAccounts returns all accounts ordered by khate number.
func (s *Store) ListAccounts(ctx context.Context) ([]ledgerbook.Account, error) {
	rows, err := s.pool.Query(ctx, `
        select id, khate_number, name, created_at
        from accounts
        order by khate_number
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledgerbook.Account, 0)
	for rows.Next() {
		var a ledgerbook.Account
		if err := rows.Scan(&a.ID, &a.KhateNumber, &a.Name, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAccount returns an account by ID.
func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (ledgerbook.Account, error) {
	var a ledgerbook.Account
	err := s.pool.QueryRow(ctx, `
        select id, khate_number, name, created_at from accounts where id = $1
    `, id).Scan(&a.ID, &a.KhateNumber, &a.Name, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	if err != nil {
		return ledgerbook.Account{}, err
	}
	return a, nil
}

// AccountByKhate resolves an account by its natural key (exact match).
func (s *Store) AccountByKhate(ctx context.Context, khate string) (ledgerbook.Account, error) {
	var a ledgerbook.Account
	err := s.pool.QueryRow(ctx, `
        select id, khate_number, name, created_at from accounts where khate_number = $1
    `, khate).Scan(&a.ID, &a.KhateNumber, &a.Name, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	if err != nil {
		return ledgerbook.Account{}, err
	}
	return a, nil
}

// --- Account writes ---

// CreateAccount inserts a new account row.
func (s *Store) CreateAccount(ctx context.Context, a ledgerbook.Account) (ledgerbook.Account, error) {
	_, err := s.pool.Exec(ctx, `
        insert into accounts (id, khate_number, name, created_at)
        values ($1, $2, $3, $4)
    `, a.ID, a.KhateNumber, a.Name, a.CreatedAt)
	if err != nil {
		return ledgerbook.Account{}, err
	}
	return a, nil
}

// UpdateAccount updates the mutable fields of an account.
func (s *Store) UpdateAccount(ctx context.Context, a ledgerbook.Account) (ledgerbook.Account, error) {
	tag, err := s.pool.Exec(ctx, `
        update accounts set name = $2 where id = $1
    `, a.ID, a.Name)
	if err != nil {
		return ledgerbook.Account{}, err
	}
	if tag.RowsAffected() == 0 {
		return ledgerbook.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// DeleteAccount removes an account row.
func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `delete from accounts where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// --- Entry reads ---

const entryColumns = `id, entry_date, account_number, receipt_number, details, amount_paise, entry_type, created_at`

func scanEntry(row pgx.Row) (ledgerbook.Entry, error) {
	var e ledgerbook.Entry
	var p int64
	var typ string
	if err := row.Scan(&e.ID, &e.Date, &e.AccountNumber, &e.ReceiptNumber, &e.Details, &p, &typ, &e.CreatedAt); err != nil {
		return ledgerbook.Entry{}, err
	}
	e.Amount = amount(p)
	e.Type = ledgerbook.Type(typ)
	e.Date = ledgerbook.DateOnly(e.Date)
	return e, nil
}

// ListEntries returns all entries ordered by date then creation time.
func (s *Store) ListEntries(ctx context.Context) ([]ledgerbook.Entry, error) {
	rows, err := s.pool.Query(ctx, `
        select `+entryColumns+` from entries order by entry_date, created_at
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// EntriesByAccount returns all entries referencing the khate number.
func (s *Store) EntriesByAccount(ctx context.Context, khate string) ([]ledgerbook.Entry, error) {
	rows, err := s.pool.Query(ctx, `
        select `+entryColumns+` from entries
        where account_number = $1
        order by entry_date, created_at
    `, khate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]ledgerbook.Entry, error) {
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
	e, err := scanEntry(s.pool.QueryRow(ctx, `
        select `+entryColumns+` from entries where id = $1
    `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return ledgerbook.Entry{}, errs.ErrNotFound
	}
	if err != nil {
		return ledgerbook.Entry{}, err
	}
	return e, nil
}

// --- Entry writes ---

// CreateEntry inserts a new entry row.
func (s *Store) CreateEntry(ctx context.Context, e ledgerbook.Entry) (ledgerbook.Entry, error) {
	_, err := s.pool.Exec(ctx, `
        insert into entries (id, entry_date, account_number, receipt_number, details, amount_paise, entry_type, created_at)
        values ($1, $2, $3, $4, $5, $6, $7, $8)
    `, e.ID, e.Date, e.AccountNumber, e.ReceiptNumber, e.Details, paise(e.Amount), string(e.Type), e.CreatedAt)
	if err != nil {
		return ledgerbook.Entry{}, err
	}
	return e, nil
}

// UpdateEntry rewrites the mutable fields of an entry.
func (s *Store) UpdateEntry(ctx context.Context, e ledgerbook.Entry) (ledgerbook.Entry, error) {
	tag, err := s.pool.Exec(ctx, `
        update entries
        set entry_date = $2, account_number = $3, receipt_number = $4,
            details = $5, amount_paise = $6, entry_type = $7
        where id = $1
    `, e.ID, e.Date, e.AccountNumber, e.ReceiptNumber, e.Details, paise(e.Amount), string(e.Type))
	if err != nil {
		return ledgerbook.Entry{}, err
	}
	if tag.RowsAffected() == 0 {
		return ledgerbook.Entry{}, errs.ErrNotFound
	}
	return e, nil
}

// DeleteEntry removes an entry row.
func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `delete from entries where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
