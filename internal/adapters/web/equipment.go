package web

import (
	"net/http"

	"desserts-ops/internal/app"
)

type equipmentBody struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	QuantityOwned int    `json:"quantity_owned"`
	Notes         string `json:"notes"`
}

func (b equipmentBody) toRequest() app.EquipmentRequest {
	return app.EquipmentRequest{
		Name:          b.Name,
		Category:      b.Category,
		QuantityOwned: b.QuantityOwned,
		Notes:         b.Notes,
	}
}

// listEquipment handles GET /api/equipment.
func (h *Handler) listEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.svc.ListEquipment(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, equipment)
}

// createEquipment handles POST /api/equipment.
func (h *Handler) createEquipment(w http.ResponseWriter, r *http.Request) {
	var body equipmentBody
	if !decodeJSON(w, r, &body) {
		return
	}
	equipment, err := h.svc.CreateEquipment(r.Context(), body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, equipment)
}

// updateEquipment handles PUT /api/equipment/{id}.
func (h *Handler) updateEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body equipmentBody
	if !decodeJSON(w, r, &body) {
		return
	}
	equipment, err := h.svc.UpdateEquipment(r.Context(), id, body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, equipment)
}

// deleteEquipment handles DELETE /api/equipment/{id}. Assigned pieces are
// refused with a 409.
func (h *Handler) deleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteEquipment(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listEventEquipment handles GET /api/events/{id}/equipment.
func (h *Handler) listEventEquipment(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	assignments, err := h.svc.ListEventEquipment(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, assignments)
}

// assignEquipment handles PUT /api/events/{id}/equipment/{equipmentID}.
// Repeating the call replaces the reserved quantity.
func (h *Handler) assignEquipment(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	equipmentID, ok := urlInt(w, r, "equipmentID")
	if !ok {
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	assignment, err := h.svc.AssignEquipment(r.Context(), eventID, equipmentID, body.Quantity)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, assignment)
}

// unassignEquipment handles DELETE /api/events/{id}/equipment/{equipmentID}.
func (h *Handler) unassignEquipment(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	equipmentID, ok := urlInt(w, r, "equipmentID")
	if !ok {
		return
	}
	if err := h.svc.UnassignEquipment(r.Context(), eventID, equipmentID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
