package web

import (
	"net/http"
	"time"

	"desserts-ops/internal/app"

	"github.com/shopspring/decimal"
)

// listInvoices handles GET /api/invoices?contact_id=1&status=Partial.
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	contactID, ok := queryInt(w, r, "contact_id")
	if !ok {
		return
	}
	invoices, err := h.svc.ListInvoices(r.Context(), contactID, r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, invoices)
}

// createInvoice handles POST /api/invoices. The quote must be Accepted;
// total and currency are copied from its stored snapshot.
func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		QuoteID       int    `json:"quote_id"`
		InvoiceNumber string `json:"invoice_number"`
		DueDate       string `json:"due_date"` // YYYY-MM-DD
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	dueDate, err := time.Parse("2006-01-02", body.DueDate)
	if err != nil {
		writeError(w, r, "due_date must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	invoice, err := h.svc.CreateInvoice(r.Context(), app.InvoiceRequest{
		QuoteID:       body.QuoteID,
		InvoiceNumber: body.InvoiceNumber,
		DueDate:       dueDate,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, invoice)
}

// getInvoice handles GET /api/invoices/{id}.
func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	invoice, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, invoice)
}

// recordPayment handles POST /api/invoices/{id}/payments. The response is
// the updated invoice with its new paid total and status.
func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Amount decimal.Decimal `json:"amount"`
		Method string          `json:"method"`
		PaidAt string          `json:"paid_at"` // YYYY-MM-DD, optional
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	var paidAt time.Time
	if body.PaidAt != "" {
		var err error
		paidAt, err = time.Parse("2006-01-02", body.PaidAt)
		if err != nil {
			writeError(w, r, "paid_at must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	invoice, err := h.svc.RecordPayment(r.Context(), app.PaymentRequest{
		InvoiceID: id,
		Amount:    body.Amount,
		Method:    body.Method,
		PaidAt:    paidAt,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, invoice)
}

// listPayments handles GET /api/invoices/{id}/payments.
func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	payments, err := h.svc.ListPayments(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, payments)
}
