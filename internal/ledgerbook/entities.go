// Package ledgerbook defines the records of a dual-column khate ledger:
// accounts keyed by their khate number and the jama/nave entries posted
// against them.
package ledgerbook

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the transaction kind of an entry. Every entry is exactly one of
// the two; there is no both-sides posting in this ledger.
type Type string

const (
	// TypeJama records an inflow on the credit (जमा) column.
	TypeJama Type = "jama"
	// TypeNave records an outflow on the debit (नावे) column.
	TypeNave Type = "nave"
)

// Valid reports whether t is one of the two transaction kinds.
func (t Type) Valid() bool { return t == TypeJama || t == TypeNave }

// Label returns the Devanagari column heading used in ledger views and
// exports.
func (t Type) Label() string {
	if t == TypeJama {
		return "जमा"
	}
	return "नावे"
}

// Account is a ledger account. KhateNumber is the caller-chosen natural key:
// unique across all accounts, matched case-sensitively, and immutable once
// set because entries reference it (not the surrogate ID).
type Account struct {
	ID          uuid.UUID
	KhateNumber string
	Name        string
	CreatedAt   time.Time
}

// Entry is a single-account, single-amount transaction record.
// AccountNumber joins to Account.KhateNumber; the join is validated at
// creation time only, so an entry may outlive its account as an accepted
// orphan. CreatedAt is a tie-break sort key, never displayed.
type Entry struct {
	ID            uuid.UUID
	Date          time.Time
	AccountNumber string
	ReceiptNumber string
	Details       string
	Amount        decimal.Decimal
	Type          Type
	CreatedAt     time.Time
}

// DateOnly normalizes t to a calendar date (UTC midnight). Entry dates carry
// no time-of-day semantics beyond ordering.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
