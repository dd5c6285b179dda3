package httpapi

import (
	"encoding/csv"
	"net/http"
	"net/url"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/kirdwahi/ledger/internal/export"
)

// exportDayBook streams the full dual-column day book as CSV.
func (s *Server) exportDayBook(w http.ResponseWriter, r *http.Request) {
	entries, err := s.entries.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	sheet := export.DayBook(entries)
	writeSheetCSV(w, sheet, export.DayBookFileName(time.Now()))
}

// exportAccountLedger streams one account's ledger as CSV.
func (s *Server) exportAccountLedger(w http.ResponseWriter, r *http.Request) {
	khate := chi.URLParam(r, "khate")
	acc, err := s.accounts.ByKhate(r.Context(), khate)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	entries, err := s.entries.ListByAccount(r.Context(), acc.KhateNumber)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	sheet := export.AccountLedger(entries)
	sheet.Name = export.AccountSheetName(acc.KhateNumber, acc.Name)
	writeSheetCSV(w, sheet, export.AccountFileName(acc.KhateNumber, acc.Name, time.Now()))
}

// writeSheetCSV renders a sheet as a CSV attachment. File names carry Marathi
// text, so the UTF-8 form goes in the filename* parameter.
func writeSheetCSV(w http.ResponseWriter, sheet export.Sheet, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="export.csv"; filename*=UTF-8''`+url.PathEscape(filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(sheet.Header)
	for _, row := range sheet.Rows {
		_ = cw.Write(row)
	}
	cw.Flush()
}
