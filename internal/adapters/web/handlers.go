package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"desserts-ops/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public) ─────────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Staff API ─────────────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireStaff)

			// Contacts
			r.Get("/api/contacts", h.listContacts)
			r.Post("/api/contacts", h.createContact)
			r.Get("/api/contacts/{id}", h.getContact)
			r.Put("/api/contacts/{id}", h.updateContact)

			// Catalog
			r.Get("/api/menu-items", h.listMenuItems)
			r.Post("/api/menu-items", h.createMenuItem)
			r.Get("/api/menu-items/{id}", h.getMenuItem)
			r.Put("/api/menu-items/{id}", h.updateMenuItem)
			r.Post("/api/menu-items/{id}/deactivate", h.deactivateMenuItem)
			r.Delete("/api/menu-items/{id}", h.deleteMenuItem)
			r.Get("/api/menu-items/{id}/recipe", h.getRecipe)
			r.Put("/api/menu-items/{id}/recipe", h.setRecipe)
			r.Get("/api/ingredients", h.listIngredients)

			// Taxes
			r.Get("/api/tax-rates", h.listTaxRates)
			r.Post("/api/tax-rates", h.createTaxRate)
			r.Put("/api/tax-rates/{id}", h.updateTaxRate)
			r.Get("/api/tax-groups", h.listTaxGroups)
			r.Post("/api/tax-groups", h.createTaxGroup)
			r.Put("/api/tax-groups/{id}", h.updateTaxGroup)
			r.Delete("/api/tax-groups/{id}", h.deleteTaxGroup)

			// Quotes
			r.Post("/api/quotes/preview", h.previewQuote)
			r.Get("/api/quotes", h.listQuotes)
			r.Post("/api/quotes", h.createQuote)
			r.Get("/api/quotes/{id}", h.getQuote)
			r.Post("/api/quotes/{id}/send", h.sendQuote)
			r.Post("/api/quotes/{id}/accept", h.acceptQuote)
			r.Post("/api/quotes/{id}/decline", h.declineQuote)

			// Invoices
			r.Get("/api/invoices", h.listInvoices)
			r.Post("/api/invoices", h.createInvoice)
			r.Get("/api/invoices/{id}", h.getInvoice)
			r.Post("/api/invoices/{id}/payments", h.recordPayment)
			r.Get("/api/invoices/{id}/payments", h.listPayments)

			// Events and finance
			r.Get("/api/events", h.listEvents)
			r.Post("/api/events", h.createEvent)
			r.Get("/api/events/{id}", h.getEvent)
			r.Get("/api/events/{id}/commissions", h.listCommissions)
			r.Post("/api/events/{id}/commissions", h.addCommission)
			r.Get("/api/events/{id}/expenses", h.listExpenses)
			r.Post("/api/events/{id}/expenses", h.addExpense)
			r.Get("/api/events/{id}/payroll", h.listPayroll)
			r.Post("/api/events/{id}/payroll", h.addPayroll)
			r.Put("/api/commissions/{id}", h.updateCommission)
			r.Delete("/api/commissions/{id}", h.deleteCommission)
			r.Put("/api/expenses/{id}", h.updateExpense)
			r.Delete("/api/expenses/{id}", h.deleteExpense)
			r.Put("/api/payroll/{id}", h.updatePayroll)
			r.Delete("/api/payroll/{id}", h.deletePayroll)
			r.Get("/api/partners", h.listPartners)
			r.Post("/api/partners", h.createPartner)

			// Equipment
			r.Get("/api/equipment", h.listEquipment)
			r.Post("/api/equipment", h.createEquipment)
			r.Put("/api/equipment/{id}", h.updateEquipment)
			r.Delete("/api/equipment/{id}", h.deleteEquipment)
			r.Get("/api/events/{id}/equipment", h.listEventEquipment)
			r.Put("/api/events/{id}/equipment/{equipmentID}", h.assignEquipment)
			r.Delete("/api/events/{id}/equipment/{equipmentID}", h.unassignEquipment)

			// Purchasing
			r.Get("/api/suppliers", h.listSuppliers)
			r.Post("/api/suppliers", h.createSupplier)
			r.Put("/api/suppliers/{id}", h.updateSupplier)
			r.Get("/api/purchase-orders", h.listPurchaseOrders)
			r.Post("/api/purchase-orders", h.createPurchaseOrder)
			r.Get("/api/purchase-orders/{id}", h.getPurchaseOrder)
			r.Post("/api/purchase-orders/{id}/lines", h.addPOLine)
			r.Delete("/api/purchase-orders/{id}/lines/{lineID}", h.removePOLine)
			r.Post("/api/purchase-orders/{id}/status", h.setPOStatus)

			// Reports
			r.Get("/api/reports/events/{id}/pnl", h.eventPnL)
			r.Get("/api/reports/tax", h.taxReport)
			r.Get("/api/reports/inventory-needs", h.inventoryNeeds)
			r.Get("/api/reports/services-booked", h.servicesBooked)
			r.Get("/api/reports/unpaid-invoices", h.unpaidInvoices)
			r.Get("/api/reports/commissions", h.commissionTotals)
			r.Get("/api/reports/revenue", h.revenueByCurrency)
			r.Get("/api/reports/leads-by-source", h.leadsBySource)
			r.Get("/api/reports/pipeline", h.pipelineFunnel)
			r.Get("/api/reports/client-retention", h.clientRetention)
			r.Get("/api/reports/staff-assignments", h.staffAssignments)
			r.Get("/api/reports/supplier-performance", h.supplierPerformance)
			r.Get("/api/reports/equipment-usage", h.equipmentUsage)
		})

		// User provisioning is admin-only.
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAdmin)
			r.Post("/api/users", h.createUser)
		})

		// ── Client portal ─────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(h.RequirePortal)
			r.Get("/api/portal/quotes", h.portalListQuotes)
			r.Get("/api/portal/quotes/{id}", h.portalGetQuote)
			r.Post("/api/portal/quotes/{id}/accept", h.portalAcceptQuote)
			r.Post("/api/portal/quotes/{id}/decline", h.portalDeclineQuote)
			r.Get("/api/portal/invoices", h.portalListInvoices)
		})
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlInt extracts a numeric URL parameter, writing a 400 on garbage.
func urlInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, r, "invalid "+name+" parameter", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// queryInt extracts an optional numeric query parameter. An absent or empty
// parameter yields 0 (meaning "no filter"); a present but non-numeric value
// writes a 400, same as urlInt.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, "invalid "+name+" parameter", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into v, writing an appropriate error
// response on failure. HTTP 413 when the body exceeds the size limit set by
// RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
