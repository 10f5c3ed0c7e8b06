package web

import (
	"net/http"
	"time"

	"desserts-ops/internal/app"

	"github.com/shopspring/decimal"
)

type supplierBody struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// listSuppliers handles GET /api/suppliers.
func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, suppliers)
}

// createSupplier handles POST /api/suppliers.
func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var body supplierBody
	if !decodeJSON(w, r, &body) {
		return
	}
	supplier, err := h.svc.CreateSupplier(r.Context(), app.SupplierRequest{
		Name:        body.Name,
		ContactName: body.ContactName,
		Email:       body.Email,
		Phone:       body.Phone,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, supplier)
}

// updateSupplier handles PUT /api/suppliers/{id}.
func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body supplierBody
	if !decodeJSON(w, r, &body) {
		return
	}
	supplier, err := h.svc.UpdateSupplier(r.Context(), id, app.SupplierRequest{
		Name:        body.Name,
		ContactName: body.ContactName,
		Email:       body.Email,
		Phone:       body.Phone,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, supplier)
}

// listPurchaseOrders handles GET /api/purchase-orders?supplier_id=1.
func (h *Handler) listPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := queryInt(w, r, "supplier_id")
	if !ok {
		return
	}
	orders, err := h.svc.ListPurchaseOrders(r.Context(), supplierID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, orders)
}

// createPurchaseOrder handles POST /api/purchase-orders.
func (h *Handler) createPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SupplierID int    `json:"supplier_id"`
		OrderDate  string `json:"order_date"` // YYYY-MM-DD, optional
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	var orderDate time.Time
	if body.OrderDate != "" {
		var err error
		orderDate, err = time.Parse("2006-01-02", body.OrderDate)
		if err != nil {
			writeError(w, r, "order_date must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	po, err := h.svc.CreatePurchaseOrder(r.Context(), body.SupplierID, orderDate)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, po)
}

// getPurchaseOrder handles GET /api/purchase-orders/{id}.
func (h *Handler) getPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	po, err := h.svc.GetPurchaseOrder(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, po)
}

// addPOLine handles POST /api/purchase-orders/{id}/lines. The response is
// the whole order with its refreshed total.
func (h *Handler) addPOLine(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Description string          `json:"description"`
		Quantity    decimal.Decimal `json:"quantity"`
		UnitCost    decimal.Decimal `json:"unit_cost"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	po, err := h.svc.AddPOLine(r.Context(), app.POLineRequest{
		POID:        id,
		Description: body.Description,
		Quantity:    body.Quantity,
		UnitCost:    body.UnitCost,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, po)
}

// removePOLine handles DELETE /api/purchase-orders/{id}/lines/{lineID}.
func (h *Handler) removePOLine(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	lineID, ok := urlInt(w, r, "lineID")
	if !ok {
		return
	}
	po, err := h.svc.RemovePOLine(r.Context(), id, lineID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, po)
}

// setPOStatus handles POST /api/purchase-orders/{id}/status.
func (h *Handler) setPOStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	po, err := h.svc.SetPOStatus(r.Context(), id, body.Status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, po)
}
