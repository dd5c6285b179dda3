package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/kirdwahi/ledger/internal/report"
)

// getDayBook renders the full ledger grouped by date, both columns side by
// side, with per-date totals and the grand totals at the end.
func (s *Server) getDayBook(w http.ResponseWriter, r *http.Request) {
	entries, err := s.entries.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	sorted := report.SortChronological(entries)
	groups := report.GroupByDate(sorted)
	perDate := report.PerDateTotals(groups)

	days := make([]dayGroupResponse, 0, len(groups))
	for i, g := range groups {
		days = append(days, dayGroupResponse{
			Date:   g.Date.Format(wireDate),
			Jama:   toEntryResponses(g.Jama),
			Nave:   toEntryResponses(g.Nave),
			Totals: toTotalsResponse(perDate[i].Totals),
		})
	}
	toJSON(w, http.StatusOK, dayBookResponse{
		Days:  days,
		Grand: toTotalsResponse(report.Sum(sorted)),
	})
}

// getAccountLedger renders one account's chronological entries with its
// running totals and balance.
func (s *Server) getAccountLedger(w http.ResponseWriter, r *http.Request) {
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
	sorted := report.SortChronological(entries)
	toJSON(w, http.StatusOK, accountLedgerResponse{
		KhateNumber: acc.KhateNumber,
		Name:        acc.Name,
		Entries:     toEntryResponses(sorted),
		Totals:      toTotalsResponse(report.AccountTotals(sorted)),
	})
}
