package web

import (
	"net/http"

	"desserts-ops/internal/core"
)

// The portal exposes a read-mostly slice of the API to client accounts.
// Every handler scopes its reads to the contact on the caller's claims; a
// portal user can never see or act on another contact's records.

// portalListQuotes handles GET /api/portal/quotes.
func (h *Handler) portalListQuotes(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.ListQuotes(r.Context(), *claims.ContactID, r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Quotes)
}

// portalGetQuote handles GET /api/portal/quotes/{id}.
func (h *Handler) portalGetQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.ownedQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, quote)
}

// portalAcceptQuote handles POST /api/portal/quotes/{id}/accept. This is the
// client-side signing action: the full acceptance workflow runs exactly as
// it does for staff.
func (h *Handler) portalAcceptQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.ownedQuote(w, r)
	if !ok {
		return
	}
	accepted, err := h.svc.AcceptQuote(r.Context(), quote.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, accepted)
}

// portalDeclineQuote handles POST /api/portal/quotes/{id}/decline.
func (h *Handler) portalDeclineQuote(w http.ResponseWriter, r *http.Request) {
	quote, ok := h.ownedQuote(w, r)
	if !ok {
		return
	}
	declined, err := h.svc.DeclineQuote(r.Context(), quote.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, declined)
}

// portalListInvoices handles GET /api/portal/invoices.
func (h *Handler) portalListInvoices(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	invoices, err := h.svc.ListInvoices(r.Context(), *claims.ContactID, r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, invoices)
}

// ownedQuote loads the {id} quote and verifies it belongs to the caller's
// contact. Foreign quotes come back as 404, not 403, so the portal never
// confirms another client's quote IDs.
func (h *Handler) ownedQuote(w http.ResponseWriter, r *http.Request) (*core.Quote, bool) {
	claims := authFromContext(r.Context())
	id, ok := urlInt(w, r, "id")
	if !ok {
		return nil, false
	}
	quote, err := h.svc.GetQuote(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return nil, false
	}
	if quote.ContactID != *claims.ContactID {
		writeError(w, r, "quote not found", "NOT_FOUND", http.StatusNotFound)
		return nil, false
	}
	return quote, true
}
