package web

import (
	"net/http"
	"time"

	"desserts-ops/internal/app"

	"github.com/shopspring/decimal"
)

// listEvents handles GET /api/events?contact_id=1.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	contactID, ok := queryInt(w, r, "contact_id")
	if !ok {
		return
	}
	events, err := h.svc.ListEvents(r.Context(), contactID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, events)
}

// getEvent handles GET /api/events/{id}.
func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	event, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, event)
}

// createEvent handles POST /api/events.
func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContactID int    `json:"contact_id"`
		Name      string `json:"event_name"`
		Date      string `json:"event_date"` // YYYY-MM-DD, optional
		Venue     string `json:"venue"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	var date *time.Time
	if body.Date != "" {
		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			writeError(w, r, "event_date must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		date = &d
	}

	event, err := h.svc.CreateEvent(r.Context(), app.EventRequest{
		ContactID: body.ContactID,
		Name:      body.Name,
		Date:      date,
		Venue:     body.Venue,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, event)
}

// listPartners handles GET /api/partners.
func (h *Handler) listPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.svc.ListPartners(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, partners)
}

// createPartner handles POST /api/partners.
func (h *Handler) createPartner(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	partner, err := h.svc.CreatePartner(r.Context(), body.Name, body.Email)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, partner)
}

// ── commissions ───────────────────────────────────────────────────────────────

// listCommissions handles GET /api/events/{id}/commissions.
func (h *Handler) listCommissions(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	commissions, err := h.svc.ListCommissions(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, commissions)
}

// addCommission handles POST /api/events/{id}/commissions.
func (h *Handler) addCommission(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		PartnerID   int             `json:"partner_id"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	commission, err := h.svc.AddCommission(r.Context(), app.CommissionRequest{
		EventID:     eventID,
		PartnerID:   body.PartnerID,
		Description: body.Description,
		Amount:      body.Amount,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, commission)
}

// updateCommission handles PUT /api/commissions/{id}.
func (h *Handler) updateCommission(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	commission, err := h.svc.UpdateCommission(r.Context(), id, body.Description, body.Amount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, commission)
}

// deleteCommission handles DELETE /api/commissions/{id}.
func (h *Handler) deleteCommission(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteCommission(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── expenses ──────────────────────────────────────────────────────────────────

// listExpenses handles GET /api/events/{id}/expenses.
func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	expenses, err := h.svc.ListExpenses(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, expenses)
}

// addExpense handles POST /api/events/{id}/expenses.
func (h *Handler) addExpense(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Date        string          `json:"expense_date"` // YYYY-MM-DD, optional
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	date, ok := parseOptionalDate(w, r, body.Date, "expense_date")
	if !ok {
		return
	}
	expense, err := h.svc.AddExpense(r.Context(), app.ExpenseRequest{
		EventID:     eventID,
		Description: body.Description,
		Amount:      body.Amount,
		Date:        date,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, expense)
}

// updateExpense handles PUT /api/expenses/{id}.
func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Date        string          `json:"expense_date"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	date, ok := parseOptionalDate(w, r, body.Date, "expense_date")
	if !ok {
		return
	}
	expense, err := h.svc.UpdateExpense(r.Context(), id, body.Description, body.Amount, date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, expense)
}

// deleteExpense handles DELETE /api/expenses/{id}.
func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── payroll ───────────────────────────────────────────────────────────────────

// listPayroll handles GET /api/events/{id}/payroll.
func (h *Handler) listPayroll(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	entries, err := h.svc.ListPayroll(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, entries)
}

// addPayroll handles POST /api/events/{id}/payroll.
func (h *Handler) addPayroll(w http.ResponseWriter, r *http.Request) {
	eventID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		StaffName string          `json:"staff_name"`
		Role      string          `json:"role"`
		Amount    decimal.Decimal `json:"amount"`
		WorkDate  string          `json:"work_date"` // YYYY-MM-DD, optional
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	workDate, ok := parseOptionalDate(w, r, body.WorkDate, "work_date")
	if !ok {
		return
	}
	entry, err := h.svc.AddPayroll(r.Context(), app.PayrollRequest{
		EventID:   eventID,
		StaffName: body.StaffName,
		Role:      body.Role,
		Amount:    body.Amount,
		WorkDate:  workDate,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, entry)
}

// updatePayroll handles PUT /api/payroll/{id}.
func (h *Handler) updatePayroll(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		StaffName string          `json:"staff_name"`
		Role      string          `json:"role"`
		Amount    decimal.Decimal `json:"amount"`
		WorkDate  string          `json:"work_date"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	workDate, ok := parseOptionalDate(w, r, body.WorkDate, "work_date")
	if !ok {
		return
	}
	entry, err := h.svc.UpdatePayroll(r.Context(), id, body.StaffName, body.Role, body.Amount, workDate)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, entry)
}

// deletePayroll handles DELETE /api/payroll/{id}.
func (h *Handler) deletePayroll(w http.ResponseWriter, r *http.Request) {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePayroll(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseOptionalDate parses a YYYY-MM-DD field, defaulting empty to now.
func parseOptionalDate(w http.ResponseWriter, r *http.Request, s, field string) (time.Time, bool) {
	if s == "" {
		return time.Now(), true
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		writeError(w, r, field+" must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return time.Time{}, false
	}
	return d, true
}
