package httpapi

import (
	"errors"
	"net/http"

	"github.com/kirdwahi/ledger/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }

// writeDomainErr maps service errors onto HTTP statuses. Anything that is not
// a known domain sentinel is a Ledger Store failure: surfaced with its
// message, never retried here.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		writeErr(w, http.StatusForbidden, "admin capability required", "forbidden")
	case errors.Is(err, errs.ErrInvalid):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "validation_error")
	case errors.Is(err, errs.ErrDuplicateKhate):
		writeErr(w, http.StatusConflict, err.Error(), "duplicate_khate")
	case errors.Is(err, errs.ErrNoAccount):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "no_such_account")
	case errors.Is(err, errs.ErrImmutable):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "immutable")
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	default:
		writeErr(w, http.StatusBadGateway, err.Error(), "store_error")
	}
}
