package web

import (
	"net/http"

	"desserts-ops/internal/app"

	"github.com/shopspring/decimal"
)

type menuItemBody struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	ItemCost     decimal.Decimal `json:"item_cost"`
	PublicPrice  decimal.Decimal `json:"public_price"`
	PartnerPrice decimal.Decimal `json:"partner_price"`
	IsActive     bool            `json:"is_active"`
}

func (b menuItemBody) toRequest() app.MenuItemRequest {
	return app.MenuItemRequest{
		Name:         b.Name,
		Category:     b.Category,
		Description:  b.Description,
		ItemCost:     b.ItemCost,
		PublicPrice:  b.PublicPrice,
		PartnerPrice: b.PartnerPrice,
		IsActive:     b.IsActive,
	}
}

// listMenuItems handles GET /api/menu-items?active=true.
func (h *Handler) listMenuItems(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	result, err := h.svc.ListMenuItems(r.Context(), activeOnly)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result.Items)
}

// getMenuItem handles GET /api/menu-items/{id}.
func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	item, err := h.svc.GetMenuItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, item)
}

// createMenuItem handles POST /api/menu-items.
func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var body menuItemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	item, err := h.svc.CreateMenuItem(r.Context(), body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, item)
}

// updateMenuItem handles PUT /api/menu-items/{id}.
func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body menuItemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	item, err := h.svc.UpdateMenuItem(r.Context(), id, body.toRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, item)
}

// deactivateMenuItem handles POST /api/menu-items/{id}/deactivate.
func (h *Handler) deactivateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeactivateMenuItem(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteMenuItem handles DELETE /api/menu-items/{id}. Items referenced by
// quote lines come back as 409; deactivation is the supported path for those.
func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteMenuItem(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listIngredients handles GET /api/ingredients.
func (h *Handler) listIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.svc.ListIngredients(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, ingredients)
}

// getRecipe handles GET /api/menu-items/{id}/recipe.
func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	lines, err := h.svc.GetRecipe(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, lines)
}

// setRecipe handles PUT /api/menu-items/{id}/recipe. The body replaces the
// whole recipe.
func (h *Handler) setRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Lines []struct {
			IngredientID   int             `json:"ingredient_id"`
			QuantityNeeded decimal.Decimal `json:"quantity_needed"`
		} `json:"lines"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	lines := make([]app.RecipeLineInput, len(body.Lines))
	for i, l := range body.Lines {
		lines[i] = app.RecipeLineInput{
			IngredientID:   l.IngredientID,
			QuantityNeeded: l.QuantityNeeded,
		}
	}
	if err := h.svc.SetRecipe(r.Context(), id, lines); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
