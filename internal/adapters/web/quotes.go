package web

import (
	"net/http"

	"desserts-ops/internal/app"
)

type quoteBody struct {
	ContactID int    `json:"contact_id"`
	QuoteName string `json:"quote_name"`
	Message   string `json:"message"`
	Currency  string `json:"currency"`
	TaxRateID *int   `json:"tax_rate_id"`
	Lines     []struct {
		MenuItemID int `json:"menu_item_id"`
		Quantity   int `json:"quantity"`
	} `json:"lines"`
}

func (b quoteBody) toRequest() app.QuoteRequest {
	req := app.QuoteRequest{
		ContactID: b.ContactID,
		QuoteName: b.QuoteName,
		Message:   b.Message,
		Currency:  b.Currency,
		TaxRateID: b.TaxRateID,
	}
	for _, l := range b.Lines {
		req.Lines = append(req.Lines, app.QuoteLineRequest{
			MenuItemID: l.MenuItemID,
			Quantity:   l.Quantity,
		})
	}
	return req
}

// previewQuote handles POST /api/quotes/preview. Prices the basket without
// persisting; the builder calls it on every edit.
func (h *Handler) previewQuote(w http.ResponseWriter, r *http.Request) {
	var body quoteBody
	if !decodeJSON(w, r, &body) {
		return
	}
	preview, err := h.svc.PreviewQuote(r.Context(), body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, preview)
}

// listQuotes handles GET /api/quotes?contact_id=1&status=Sent.
func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	contactID, ok := queryInt(w, r, "contact_id")
	if !ok {
		return
	}
	result, err := h.svc.ListQuotes(r.Context(), contactID, r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Quotes)
}

// createQuote handles POST /api/quotes. Totals are computed server-side;
// any figures in the body are ignored.
func (h *Handler) createQuote(w http.ResponseWriter, r *http.Request) {
	var body quoteBody
	if !decodeJSON(w, r, &body) {
		return
	}
	quote, err := h.svc.CreateQuote(r.Context(), body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, quote)
}

// getQuote handles GET /api/quotes/{id}.
func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	quote, err := h.svc.GetQuote(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, quote)
}

// sendQuote handles POST /api/quotes/{id}/send.
func (h *Handler) sendQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	quote, err := h.svc.SendQuote(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, quote)
}

// acceptQuote handles POST /api/quotes/{id}/accept. Runs the full acceptance
// workflow: transition, contact promotion, and event linking.
func (h *Handler) acceptQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	quote, err := h.svc.AcceptQuote(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, quote)
}

// declineQuote handles POST /api/quotes/{id}/decline.
func (h *Handler) declineQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	quote, err := h.svc.DeclineQuote(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, quote)
}
