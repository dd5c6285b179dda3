package export

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirdwahi/ledger/internal/ledgerbook"
	"github.com/kirdwahi/ledger/internal/report"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(date time.Time, khate, receipt, details, amount string, typ ledgerbook.Type, created time.Time) ledgerbook.Entry {
	return ledgerbook.Entry{
		ID:            uuid.New(),
		Date:          date,
		AccountNumber: khate,
		ReceiptNumber: receipt,
		Details:       details,
		Amount:        decimal.RequireFromString(amount),
		Type:          typ,
		CreatedAt:     created,
	}
}

func TestDayBook_PairsColumnsAndBlanksShortSide(t *testing.T) {
	d := day(2026, 8, 1)
	entries := []ledgerbook.Entry{
		entry(d, "101", "प-1", "बियाणे खरेदी", "250.00", ledgerbook.TypeNave, time.Time{}),
		entry(d, "102", "", "दूध विक्री", "400.00", ledgerbook.TypeJama, time.Time{}),
		entry(d, "103", "प-2", "मजुरी", "150.00", ledgerbook.TypeNave, time.Time{}),
	}
	sheet := DayBook(entries)
	if len(sheet.Header) != 10 {
		t.Fatalf("expected 10 header cells, got %d", len(sheet.Header))
	}
	// 2 paired rows + totals + balance + separator
	if len(sheet.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(sheet.Rows))
	}

	first := sheet.Rows[0]
	if first[0] != "01/08/2026" {
		t.Fatalf("expected row date 01/08/2026, got %q", first[0])
	}
	if first[1] != "102" || first[2] != "-" {
		t.Fatalf("jama side wrong: %v", first[:5])
	}
	if first[6] != "101" || first[7] != "प-1" {
		t.Fatalf("nave side wrong: %v", first[5:])
	}

	// second row: jama column exhausted, five blank cells
	second := sheet.Rows[1]
	for i := 0; i < 5; i++ {
		if second[i] != "" {
			t.Fatalf("expected blank jama cell %d, got %q", i, second[i])
		}
	}
	if second[6] != "103" {
		t.Fatalf("expected nave khate 103, got %q", second[6])
	}

	totals := sheet.Rows[2]
	if totals[3] != labelTotal || totals[4] != "400.00" {
		t.Fatalf("unexpected jama total row: %v", totals)
	}
	if totals[8] != labelTotal || totals[9] != "400.00" {
		t.Fatalf("unexpected nave total row: %v", totals)
	}

	balance := sheet.Rows[3]
	if balance[8] != labelBalance || balance[9] != "₹0.00" {
		// jama 400 - nave 400 = 0
		t.Fatalf("unexpected balance row: %v", balance)
	}

	sep := sheet.Rows[4]
	for _, c := range sep {
		if c != "" {
			t.Fatalf("separator row not blank: %v", sep)
		}
	}
}

func TestDayBook_Deterministic(t *testing.T) {
	entries := []ledgerbook.Entry{
		entry(day(2026, 8, 2), "101", "", "a", "10.00", ledgerbook.TypeJama, time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)),
		entry(day(2026, 8, 1), "102", "र-5", "b", "20.00", ledgerbook.TypeNave, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)),
		entry(day(2026, 8, 2), "103", "", "c", "30.00", ledgerbook.TypeNave, time.Date(2026, 8, 2, 8, 0, 0, 0, time.UTC)),
	}
	a := DayBook(entries)
	b := DayBook(entries)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("DayBook is not deterministic for the same input")
	}
	// earlier date renders first
	if a.Rows[0][6] != "102" {
		t.Fatalf("expected 01/08 nave row first, got %v", a.Rows[0])
	}
}

func TestAccountLedger_ColumnSumsMatchTotals(t *testing.T) {
	d1, d2 := day(2026, 8, 1), day(2026, 8, 5)
	entries := []ledgerbook.Entry{
		entry(d2, "101", "", "खत खरेदी", "300.00", ledgerbook.TypeNave, time.Time{}),
		entry(d1, "101", "प-9", "ऊस बिल", "1200.50", ledgerbook.TypeJama, time.Time{}),
	}
	sheet := AccountLedger(entries)
	if len(sheet.Header) != 6 {
		t.Fatalf("expected 6 header cells, got %d", len(sheet.Header))
	}
	// 2 entry rows + totals + balance
	if len(sheet.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(sheet.Rows))
	}

	// chronological: d1 first despite input order
	if sheet.Rows[0][0] != "01/08/2026" || sheet.Rows[1][0] != "05/08/2026" {
		t.Fatalf("rows out of order: %v / %v", sheet.Rows[0], sheet.Rows[1])
	}
	// amount lands in its own column, the other stays blank
	if sheet.Rows[0][4] != "1200.50" || sheet.Rows[0][5] != "" {
		t.Fatalf("jama row wrong: %v", sheet.Rows[0])
	}
	if sheet.Rows[1][4] != "" || sheet.Rows[1][5] != "300.00" {
		t.Fatalf("nave row wrong: %v", sheet.Rows[1])
	}

	want := report.AccountTotals(entries)
	totals := sheet.Rows[2]
	if totals[4] != want.Jama.StringFixed(2) || totals[5] != want.Nave.StringFixed(2) {
		t.Fatalf("totals row %v does not match %+v", totals, want)
	}
	balance := sheet.Rows[3]
	if balance[3] != labelBalance || balance[5] != "₹"+want.DisplayBalance() {
		t.Fatalf("unexpected balance row: %v", balance)
	}
}

func TestReceiptCell(t *testing.T) {
	withReceipt := entry(day(2026, 8, 1), "101", "प-7", "x", "1.00", ledgerbook.TypeJama, time.Time{})
	if got := receiptCell(withReceipt); got != "प-7" {
		t.Fatalf("expected प-7, got %q", got)
	}
	blank := entry(day(2026, 8, 1), "101", "  ", "x", "1.00", ledgerbook.TypeJama, time.Time{})
	if got := receiptCell(blank); got != "-" {
		t.Fatalf("expected dash, got %q", got)
	}
}

func TestFileNames(t *testing.T) {
	asOf := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if got := DayBookFileName(asOf); got != "किर्दवही_नोंदी_29-08-2026.csv" {
		t.Fatalf("unexpected day book file name: %q", got)
	}
	if got := AccountFileName("101", "रामचंद्र", asOf); got != "खाते_101_रामचंद्र_29-08-2026.csv" {
		t.Fatalf("unexpected account file name: %q", got)
	}
	if got := AccountSheetName("101", "रामचंद्र"); got != "खाते_101_रामचंद्र" {
		t.Fatalf("unexpected sheet name: %q", got)
	}
}
