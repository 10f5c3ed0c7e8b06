package web

import (
	"net/http"

	"desserts-ops/internal/app"
)

type contactBody struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Status        string `json:"status"`
	PipelineStage string `json:"pipeline_stage"`
	LeadSource    string `json:"lead_source"`
	PriceTier     string `json:"price_tier"`
}

func (b contactBody) toRequest() app.ContactRequest {
	return app.ContactRequest{
		FullName:      b.FullName,
		Email:         b.Email,
		Phone:         b.Phone,
		Company:       b.Company,
		Status:        b.Status,
		PipelineStage: b.PipelineStage,
		LeadSource:    b.LeadSource,
		PriceTier:     b.PriceTier,
	}
}

// listContacts handles GET /api/contacts?status=Lead.
func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListContacts(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Contacts)
}

// getContact handles GET /api/contacts/{id}.
func (h *Handler) getContact(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	contact, err := h.svc.GetContact(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, contact)
}

// createContact handles POST /api/contacts.
func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	var body contactBody
	if !decodeJSON(w, r, &body) {
		return
	}
	contact, err := h.svc.CreateContact(r.Context(), body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, contact)
}

// updateContact handles PUT /api/contacts/{id}.
func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body contactBody
	if !decodeJSON(w, r, &body) {
		return
	}
	contact, err := h.svc.UpdateContact(r.Context(), id, body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, contact)
}
