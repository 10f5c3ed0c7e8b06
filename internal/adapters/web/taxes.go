package web

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type taxRateBody struct {
	RateName       string          `json:"rate_name"`
	RatePercentage decimal.Decimal `json:"rate_percentage"`
	IsActive       bool            `json:"is_active"`
}

type taxGroupBody struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	RateIDs   []int  `json:"rate_ids"`
}

// listTaxRates handles GET /api/tax-rates?active=true.
func (h *Handler) listTaxRates(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	rates, err := h.svc.ListTaxRates(r.Context(), activeOnly)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, rates)
}

// createTaxRate handles POST /api/tax-rates.
func (h *Handler) createTaxRate(w http.ResponseWriter, r *http.Request) {
	var body taxRateBody
	if !decodeJSON(w, r, &body) {
		return
	}
	rate, err := h.svc.CreateTaxRate(r.Context(), body.RateName, body.RatePercentage)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, rate)
}

// updateTaxRate handles PUT /api/tax-rates/{id}. Edits never touch stored
// quote snapshots; only future quotes see the new percentage.
func (h *Handler) updateTaxRate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body taxRateBody
	if !decodeJSON(w, r, &body) {
		return
	}
	rate, err := h.svc.UpdateTaxRate(r.Context(), id, body.RateName, body.RatePercentage, body.IsActive)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, rate)
}

// listTaxGroups handles GET /api/tax-groups.
func (h *Handler) listTaxGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListTaxGroups(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, groups)
}

// createTaxGroup handles POST /api/tax-groups.
func (h *Handler) createTaxGroup(w http.ResponseWriter, r *http.Request) {
	var body taxGroupBody
	if !decodeJSON(w, r, &body) {
		return
	}
	group, err := h.svc.CreateTaxGroup(r.Context(), body.Name, body.IsDefault, body.RateIDs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, group)
}

// updateTaxGroup handles PUT /api/tax-groups/{id}. Membership is replaced
// wholesale from rate_ids.
func (h *Handler) updateTaxGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body taxGroupBody
	if !decodeJSON(w, r, &body) {
		return
	}
	group, err := h.svc.UpdateTaxGroup(r.Context(), id, body.Name, body.IsDefault, body.RateIDs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, group)
}

// deleteTaxGroup handles DELETE /api/tax-groups/{id}.
func (h *Handler) deleteTaxGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteTaxGroup(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
