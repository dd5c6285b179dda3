// Package report derives grouped totals and balances from a flat entry
// collection. Everything here is a pure function of its input: safe to
// recompute on every read, never mutating the store, and never failing on
// empty input.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kirdwahi/ledger/internal/ledgerbook"
)

// Totals holds the two column sums and their signed difference for a scope
// (a date, an account, or the whole ledger). Balance keeps its sign;
// DisplayBalance drops it, matching how the ledger book prints शिल्लक.
type Totals struct {
	Jama    decimal.Decimal
	Nave    decimal.Decimal
	Balance decimal.Decimal
}

// DisplayBalance renders the absolute balance with two decimal places.
func (t Totals) DisplayBalance() string { return t.Balance.Abs().StringFixed(2) }

// DayGroup is one date bucket with entries partitioned by column.
// Within each slice the original list order is preserved.
type DayGroup struct {
	Date time.Time
	Jama []ledgerbook.Entry
	Nave []ledgerbook.Entry
}

// DateTotals pairs a date bucket with its totals.
type DateTotals struct {
	Date time.Time
	Totals
}

// SortChronological returns a copy of entries in the canonical ledger order:
// date ascending, then creation time ascending. The sort is stable, and a
// missing creation timestamp on either side leaves the pair in input order.
func SortChronological(entries []ledgerbook.Entry) []ledgerbook.Entry {
	out := make([]ledgerbook.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := ledgerbook.DateOnly(out[i].Date), ledgerbook.DateOnly(out[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		ci, cj := out[i].CreatedAt, out[j].CreatedAt
		if ci.IsZero() || cj.IsZero() {
			return false
		}
		return ci.Before(cj)
	})
	return out
}

// GroupByDate partitions entries into per-date jama/nave buckets. Dates come
// out in ascending calendar order; within a bucket entries keep the order
// they arrived in (callers pass the canonical chronological order).
func GroupByDate(entries []ledgerbook.Entry) []DayGroup {
	byDate := make(map[time.Time]*DayGroup)
	dates := make([]time.Time, 0)
	for _, e := range entries {
		d := ledgerbook.DateOnly(e.Date)
		g, ok := byDate[d]
		if !ok {
			g = &DayGroup{Date: d}
			byDate[d] = g
			dates = append(dates, d)
		}
		if e.Type == ledgerbook.TypeJama {
			g.Jama = append(g.Jama, e)
		} else {
			g.Nave = append(g.Nave, e)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	out := make([]DayGroup, 0, len(dates))
	for _, d := range dates {
		out = append(out, *byDate[d])
	}
	return out
}

// Sum computes column totals and the signed balance for a set of entries.
// Amounts are summed exactly and rounded to two places once, at this
// boundary, so intermediate addends never accumulate rounding drift.
func Sum(entries []ledgerbook.Entry) Totals {
	var jama, nave decimal.Decimal
	for _, e := range entries {
		switch e.Type {
		case ledgerbook.TypeJama:
			jama = jama.Add(e.Amount)
		case ledgerbook.TypeNave:
			nave = nave.Add(e.Amount)
		}
	}
	jama = jama.Round(2)
	nave = nave.Round(2)
	return Totals{Jama: jama, Nave: nave, Balance: jama.Sub(nave)}
}

// PerDateTotals applies Sum to each date bucket, keeping bucket order.
func PerDateTotals(groups []DayGroup) []DateTotals {
	out := make([]DateTotals, 0, len(groups))
	for _, g := range groups {
		all := make([]ledgerbook.Entry, 0, len(g.Jama)+len(g.Nave))
		all = append(all, g.Jama...)
		all = append(all, g.Nave...)
		out = append(out, DateTotals{Date: g.Date, Totals: Sum(all)})
	}
	return out
}

// AccountTotals computes the totals for one account's full entry set, as
// shown at the head of the account-scoped ledger view.
func AccountTotals(entries []ledgerbook.Entry) Totals {
	return Sum(entries)
}
