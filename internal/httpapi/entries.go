package httpapi

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kirdwahi/ledger/internal/ledgerbook"
)

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	var (
		entries []ledgerbook.Entry
		err     error
	)
	if khate := r.URL.Query().Get("account"); khate != "" {
		entries, err = s.entries.ListByAccount(r.Context(), khate)
	} else {
		entries, err = s.entries.List(r.Context())
	}
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toEntryResponses(entries))
}

func (s *Server) postEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	created, err := s.entries.Create(r.Context(), callerCapability(r), in)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toEntryResponse(created))
}

func (s *Server) patchEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid entry id")
		return
	}
	var req entryRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	updated, err := s.entries.Update(r.Context(), callerCapability(r), id, in)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toEntryResponse(updated))
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid entry id")
		return
	}
	if err := s.entries.Delete(r.Context(), callerCapability(r), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
