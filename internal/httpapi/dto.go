package httpapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirdwahi/ledger/internal/errs"
	"github.com/kirdwahi/ledger/internal/ledgerbook"
	"github.com/kirdwahi/ledger/internal/report"
	"github.com/kirdwahi/ledger/internal/service/entry"
)

// wireDate is the calendar-date layout used on the wire.
const wireDate = "2006-01-02"

type accountRequest struct {
	KhateNumber string `json:"khate_number"`
	Name        string `json:"name"`
}

type accountResponse struct {
	ID          uuid.UUID `json:"id"`
	KhateNumber string    `json:"khate_number"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAccountResponse(a ledgerbook.Account) accountResponse {
	return accountResponse{ID: a.ID, KhateNumber: a.KhateNumber, Name: a.Name, CreatedAt: a.CreatedAt}
}

type entryRequest struct {
	Date          string          `json:"date"`
	AccountNumber string          `json:"account_number"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Details       string          `json:"details"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
}

func (req entryRequest) toInput() (entry.Input, error) {
	var date time.Time
	if req.Date != "" {
		d, err := time.ParseInLocation(wireDate, req.Date, time.UTC)
		if err != nil {
			return entry.Input{}, fmt.Errorf("%w: date must be YYYY-MM-DD", errs.ErrInvalid)
		}
		date = d
	}
	return entry.Input{
		Date:          date,
		AccountNumber: req.AccountNumber,
		ReceiptNumber: req.ReceiptNumber,
		Details:       req.Details,
		Amount:        req.Amount,
		Type:          ledgerbook.Type(req.Type),
	}, nil
}

type entryResponse struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	AccountNumber string    `json:"account_number"`
	ReceiptNumber string    `json:"receipt_number,omitempty"`
	Details       string    `json:"details"`
	Amount        string    `json:"amount"`
	Type          string    `json:"type"`
	TypeLabel     string    `json:"type_label"`
	CreatedAt     time.Time `json:"created_at"`
}

func toEntryResponse(e ledgerbook.Entry) entryResponse {
	return entryResponse{
		ID:            e.ID,
		Date:          e.Date.UTC().Format(wireDate),
		AccountNumber: e.AccountNumber,
		ReceiptNumber: e.ReceiptNumber,
		Details:       e.Details,
		Amount:        e.Amount.StringFixed(2),
		Type:          string(e.Type),
		TypeLabel:     e.Type.Label(),
		CreatedAt:     e.CreatedAt,
	}
}

func toEntryResponses(entries []ledgerbook.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

type totalsResponse struct {
	Jama    string `json:"jama_total"`
	Nave    string `json:"nave_total"`
	Balance string `json:"balance"`
	// DisplayBalance is the unsigned form printed on the ledger page.
	DisplayBalance string `json:"display_balance"`
}

func toTotalsResponse(t report.Totals) totalsResponse {
	return totalsResponse{
		Jama:           t.Jama.StringFixed(2),
		Nave:           t.Nave.StringFixed(2),
		Balance:        t.Balance.StringFixed(2),
		DisplayBalance: t.DisplayBalance(),
	}
}

type dayGroupResponse struct {
	Date   string          `json:"date"`
	Jama   []entryResponse `json:"jama"`
	Nave   []entryResponse `json:"nave"`
	Totals totalsResponse  `json:"totals"`
}

type dayBookResponse struct {
	Days  []dayGroupResponse `json:"days"`
	Grand totalsResponse     `json:"grand_totals"`
}

type accountLedgerResponse struct {
	KhateNumber string          `json:"khate_number"`
	Name        string          `json:"name"`
	Entries     []entryResponse `json:"entries"`
	Totals      totalsResponse  `json:"totals"`
}
