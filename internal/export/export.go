// Package export flattens aggregated ledger data into ordered row sequences
// for spreadsheet or print rendering. Formatters are pure: the same entry set
// always yields byte-identical rows, and row order mirrors the canonical
// chronological order from the report package.
package export

import (
	"strings"
	"time"

	"github.com/kirdwahi/ledger/internal/ledgerbook"
	"github.com/kirdwahi/ledger/internal/report"
)

// Column and synthetic-row labels as printed in the ledger book.
const (
	labelDate    = "तारीख"
	labelKhate   = "खाते नं."
	labelReceipt = "पावती नं."
	labelDetails = "तपशील"
	labelAmount  = "रक्कम"
	labelJama    = "जमा रक्कम"
	labelNave    = "नावे रक्कम"
	labelTotal   = "एकूण:"
	labelBalance = "शिल्लक:"

	dayBookSheetName = "किर्दवही नोंदी"
)

// rowDateFormat renders dates the way the printed book does (DD/MM/YYYY).
const rowDateFormat = "02/01/2006"

// fileDateFormat is the date stamp embedded in suggested file names.
const fileDateFormat = "02-01-2006"

// Sheet is a flat, ordered tabular rendering ready for CSV or spreadsheet
// output. Rows do not include the header.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// DayBook renders the all-accounts dual-ledger view: for every date, paired
// jama/nave rows, a totals row, a balance row, and a blank separator row.
func DayBook(entries []ledgerbook.Entry) Sheet {
	header := []string{
		labelDate, labelKhate, labelReceipt, labelDetails, labelAmount,
		labelDate, labelKhate, labelReceipt, labelDetails, labelAmount,
	}
	groups := report.GroupByDate(report.SortChronological(entries))
	rows := make([][]string, 0, len(entries)+3*len(groups))
	for _, g := range groups {
		n := len(g.Jama)
		if len(g.Nave) > n {
			n = len(g.Nave)
		}
		for i := 0; i < n; i++ {
			row := make([]string, 0, 10)
			row = append(row, sideCells(g.Jama, i)...)
			row = append(row, sideCells(g.Nave, i)...)
			rows = append(rows, row)
		}
		t := report.Sum(append(append([]ledgerbook.Entry{}, g.Jama...), g.Nave...))
		rows = append(rows,
			[]string{"", "", "", labelTotal, t.Jama.StringFixed(2), "", "", "", labelTotal, t.Nave.StringFixed(2)},
			[]string{"", "", "", "", "", "", "", "", labelBalance, "₹" + t.DisplayBalance()},
			[]string{"", "", "", "", "", "", "", "", "", ""},
		)
	}
	return Sheet{Name: dayBookSheetName, Header: header, Rows: rows}
}

// sideCells renders the i-th entry of one column, or five blank cells when
// that side has fewer entries than the other.
func sideCells(side []ledgerbook.Entry, i int) []string {
	if i >= len(side) {
		return []string{"", "", "", "", ""}
	}
	e := side[i]
	return []string{
		e.Date.UTC().Format(rowDateFormat),
		e.AccountNumber,
		receiptCell(e),
		e.Details,
		e.Amount.StringFixed(2),
	}
}

// AccountLedger renders one account's ledger: one row per entry in
// chronological order with the amount in its jama or nave column, then grand
// totals and the absolute balance.
func AccountLedger(entries []ledgerbook.Entry) Sheet {
	header := []string{labelDate, labelKhate, labelReceipt, labelDetails, labelJama, labelNave}
	sorted := report.SortChronological(entries)
	rows := make([][]string, 0, len(sorted)+2)
	for _, e := range sorted {
		jama, nave := "", ""
		if e.Type == ledgerbook.TypeJama {
			jama = e.Amount.StringFixed(2)
		} else {
			nave = e.Amount.StringFixed(2)
		}
		rows = append(rows, []string{
			e.Date.UTC().Format(rowDateFormat),
			e.AccountNumber,
			receiptCell(e),
			e.Details,
			jama,
			nave,
		})
	}
	t := report.AccountTotals(sorted)
	rows = append(rows,
		[]string{"", "", "", labelTotal, t.Jama.StringFixed(2), t.Nave.StringFixed(2)},
		[]string{"", "", "", labelBalance, "", "₹" + t.DisplayBalance()},
	)
	return Sheet{Header: header, Rows: rows}
}

// receiptCell shows a dash for an existing entry without a receipt number.
// Blank cells are reserved for absent entries.
func receiptCell(e ledgerbook.Entry) string {
	if strings.TrimSpace(e.ReceiptNumber) == "" {
		return "-"
	}
	return e.ReceiptNumber
}

// AccountSheetName labels the single-account sheet: खाते_<khate>_<name>.
func AccountSheetName(khate, name string) string {
	return "खाते_" + khate + "_" + name
}

// DayBookFileName suggests a download name for the day book export. The
// as-of date is caller-supplied metadata; it does not affect row content.
func DayBookFileName(asOf time.Time) string {
	return "किर्दवही_नोंदी_" + asOf.UTC().Format(fileDateFormat) + ".csv"
}

// AccountFileName suggests a download name for a single-account export.
func AccountFileName(khate, name string, asOf time.Time) string {
	return AccountSheetName(khate, name) + "_" + asOf.UTC().Format(fileDateFormat) + ".csv"
}
