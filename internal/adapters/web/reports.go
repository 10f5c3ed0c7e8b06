package web

import (
	"net/http"
	"time"
)

// dateRange reads from/to query params (YYYY-MM-DD). Absent bounds default
// to the trailing 30 days ending tomorrow, matching the dashboard's default
// reporting window.
func dateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if s := r.URL.Query().Get("from"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, r, "from must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		from = d
	}
	if s := r.URL.Query().Get("to"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeError(w, r, "to must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		to = d
	}
	return from, to, true
}

// eventPnL handles GET /api/reports/events/{id}/pnl.
func (h *Handler) eventPnL(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	pnl, err := h.svc.GetEventPnL(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, pnl)
}

// taxReport handles GET /api/reports/tax?from=...&to=...
func (h *Handler) taxReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	report, err := h.svc.GetTaxReport(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, report)
}

// inventoryNeeds handles GET /api/reports/inventory-needs?from=...&to=...
func (h *Handler) inventoryNeeds(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	needs, err := h.svc.GetInventoryNeeds(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, needs)
}

// servicesBooked handles GET /api/reports/services-booked?from=...&to=...
func (h *Handler) servicesBooked(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	booked, err := h.svc.GetServicesBooked(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, booked)
}

// unpaidInvoices handles GET /api/reports/unpaid-invoices.
func (h *Handler) unpaidInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.GetUnpaidInvoices(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, invoices)
}

// commissionTotals handles GET /api/reports/commissions?from=...&to=...
func (h *Handler) commissionTotals(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	totals, err := h.svc.GetCommissionTotals(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, totals)
}

// leadsBySource handles GET /api/reports/leads-by-source. Not period
// scoped: the funnel reports always cover the whole contact book.
func (h *Handler) leadsBySource(w http.ResponseWriter, r *http.Request) {
	leads, err := h.svc.GetLeadsBySource(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, leads)
}

// pipelineFunnel handles GET /api/reports/pipeline.
func (h *Handler) pipelineFunnel(w http.ResponseWriter, r *http.Request) {
	funnel, err := h.svc.GetPipelineFunnel(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, funnel)
}

// clientRetention handles GET /api/reports/client-retention.
func (h *Handler) clientRetention(w http.ResponseWriter, r *http.Request) {
	retention, err := h.svc.GetClientRetention(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, retention)
}

// staffAssignments handles GET /api/reports/staff-assignments?from=...&to=...
func (h *Handler) staffAssignments(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	assignments, err := h.svc.GetStaffAssignments(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, assignments)
}

// supplierPerformance handles GET /api/reports/supplier-performance?from=...&to=...
func (h *Handler) supplierPerformance(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	performance, err := h.svc.GetSupplierPerformance(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, performance)
}

// equipmentUsage handles GET /api/reports/equipment-usage?from=...&to=...
func (h *Handler) equipmentUsage(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	usage, err := h.svc.GetEquipmentUsage(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, usage)
}

// revenueByCurrency handles GET /api/reports/revenue?from=...&to=...
// Each currency is reported separately; there is no conversion.
func (h *Handler) revenueByCurrency(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(w, r)
	if !ok {
		return
	}
	revenue, err := h.svc.GetRevenueByCurrency(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, revenue)
}
