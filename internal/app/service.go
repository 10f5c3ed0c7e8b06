package app

import (
	"context"
	"time"

	"desserts-ops/internal/core"

	"github.com/shopspring/decimal"
)

// ApplicationService is the single interface all adapters call. It decouples
// presentation from business logic. Implementations must contain no display
// logic of any kind.
type ApplicationService interface {
	// ── contacts ──────────────────────────────────────────────────────────

	ListContacts(ctx context.Context, status string) (*ContactListResult, error)
	GetContact(ctx context.Context, id int) (*core.Contact, error)
	CreateContact(ctx context.Context, req ContactRequest) (*core.Contact, error)
	UpdateContact(ctx context.Context, id int, req ContactRequest) (*core.Contact, error)

	// ── catalog ───────────────────────────────────────────────────────────

	ListMenuItems(ctx context.Context, activeOnly bool) (*MenuListResult, error)
	GetMenuItem(ctx context.Context, id int) (*core.MenuItem, error)
	CreateMenuItem(ctx context.Context, req MenuItemRequest) (*core.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int, req MenuItemRequest) (*core.MenuItem, error)
	DeactivateMenuItem(ctx context.Context, id int) error
	// DeleteMenuItem refuses with a conflict if any quote line references the item.
	DeleteMenuItem(ctx context.Context, id int) error
	ListIngredients(ctx context.Context) ([]core.Ingredient, error)
	GetRecipe(ctx context.Context, menuItemID int) ([]core.RecipeLine, error)
	SetRecipe(ctx context.Context, menuItemID int, lines []RecipeLineInput) error

	// ── taxes ─────────────────────────────────────────────────────────────

	ListTaxRates(ctx context.Context, activeOnly bool) ([]core.TaxRate, error)
	CreateTaxRate(ctx context.Context, name string, percentage decimal.Decimal) (*core.TaxRate, error)
	UpdateTaxRate(ctx context.Context, id int, name string, percentage decimal.Decimal, isActive bool) (*core.TaxRate, error)
	ListTaxGroups(ctx context.Context) ([]core.TaxGroup, error)
	CreateTaxGroup(ctx context.Context, name string, isDefault bool, rateIDs []int) (*core.TaxGroup, error)
	UpdateTaxGroup(ctx context.Context, id int, name string, isDefault bool, rateIDs []int) (*core.TaxGroup, error)
	DeleteTaxGroup(ctx context.Context, id int) error

	// ── quotes ────────────────────────────────────────────────────────────

	// PreviewQuote prices a basket without persisting anything. The web quote
	// builder calls it on every edit.
	PreviewQuote(ctx context.Context, req QuoteRequest) (*QuotePreviewResult, error)
	// CreateQuote persists header and lines atomically with server-computed totals.
	CreateQuote(ctx context.Context, req QuoteRequest) (*core.Quote, error)
	GetQuote(ctx context.Context, id int) (*core.Quote, error)
	ListQuotes(ctx context.Context, contactID int, status string) (*QuoteListResult, error)
	SendQuote(ctx context.Context, id int) (*core.Quote, error)
	DeclineQuote(ctx context.Context, id int) (*core.Quote, error)
	// AcceptQuote runs the full acceptance workflow: status transition,
	// contact promotion, and event linking in one transaction.
	AcceptQuote(ctx context.Context, id int) (*core.Quote, error)

	// ── invoices ──────────────────────────────────────────────────────────

	CreateInvoice(ctx context.Context, req InvoiceRequest) (*core.Invoice, error)
	GetInvoice(ctx context.Context, id int) (*core.Invoice, error)
	ListInvoices(ctx context.Context, contactID int, status string) ([]core.Invoice, error)
	RecordPayment(ctx context.Context, req PaymentRequest) (*core.Invoice, error)
	ListPayments(ctx context.Context, invoiceID int) ([]core.Payment, error)

	// ── events and finance ────────────────────────────────────────────────

	ListEvents(ctx context.Context, contactID int) ([]core.Event, error)
	GetEvent(ctx context.Context, id int) (*core.Event, error)
	CreateEvent(ctx context.Context, req EventRequest) (*core.Event, error)
	ListPartners(ctx context.Context) ([]core.Partner, error)
	CreatePartner(ctx context.Context, name, email string) (*core.Partner, error)
	ListCommissions(ctx context.Context, eventID int) ([]core.Commission, error)
	AddCommission(ctx context.Context, req CommissionRequest) (*core.Commission, error)
	UpdateCommission(ctx context.Context, id int, description string, amount decimal.Decimal) (*core.Commission, error)
	DeleteCommission(ctx context.Context, id int) error
	ListExpenses(ctx context.Context, eventID int) ([]core.Expense, error)
	AddExpense(ctx context.Context, req ExpenseRequest) (*core.Expense, error)
	UpdateExpense(ctx context.Context, id int, description string, amount decimal.Decimal, date time.Time) (*core.Expense, error)
	DeleteExpense(ctx context.Context, id int) error
	ListPayroll(ctx context.Context, eventID int) ([]core.PayrollEntry, error)
	AddPayroll(ctx context.Context, req PayrollRequest) (*core.PayrollEntry, error)
	UpdatePayroll(ctx context.Context, id int, staffName, role string, amount decimal.Decimal, workDate time.Time) (*core.PayrollEntry, error)
	DeletePayroll(ctx context.Context, id int) error

	// ── equipment ─────────────────────────────────────────────────────────

	ListEquipment(ctx context.Context) ([]core.Equipment, error)
	CreateEquipment(ctx context.Context, req EquipmentRequest) (*core.Equipment, error)
	UpdateEquipment(ctx context.Context, id int, req EquipmentRequest) (*core.Equipment, error)
	// DeleteEquipment refuses with a conflict while event assignments reference the piece.
	DeleteEquipment(ctx context.Context, id int) error
	ListEventEquipment(ctx context.Context, eventID int) ([]core.EquipmentAssignment, error)
	AssignEquipment(ctx context.Context, eventID, equipmentID, quantity int) (*core.EquipmentAssignment, error)
	UnassignEquipment(ctx context.Context, eventID, equipmentID int) error

	// ── purchasing ────────────────────────────────────────────────────────

	ListSuppliers(ctx context.Context) ([]core.Supplier, error)
	CreateSupplier(ctx context.Context, req SupplierRequest) (*core.Supplier, error)
	UpdateSupplier(ctx context.Context, id int, req SupplierRequest) (*core.Supplier, error)
	ListPurchaseOrders(ctx context.Context, supplierID int) ([]core.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id int) (*core.PurchaseOrder, error)
	CreatePurchaseOrder(ctx context.Context, supplierID int, orderDate time.Time) (*core.PurchaseOrder, error)
	AddPOLine(ctx context.Context, req POLineRequest) (*core.PurchaseOrder, error)
	RemovePOLine(ctx context.Context, poID, lineID int) (*core.PurchaseOrder, error)
	SetPOStatus(ctx context.Context, poID int, status string) (*core.PurchaseOrder, error)

	// ── reports ───────────────────────────────────────────────────────────

	GetEventPnL(ctx context.Context, eventID int) (*core.EventPnL, error)
	GetTaxReport(ctx context.Context, from, to time.Time) (*core.TaxReport, error)
	GetInventoryNeeds(ctx context.Context, from, to time.Time) ([]core.InventoryNeed, error)
	GetServicesBooked(ctx context.Context, from, to time.Time) ([]core.ServiceBooked, error)
	GetUnpaidInvoices(ctx context.Context) ([]core.Invoice, error)
	GetCommissionTotals(ctx context.Context, from, to time.Time) ([]core.PartnerCommissionTotal, error)
	GetRevenueByCurrency(ctx context.Context, from, to time.Time) ([]core.CurrencyRevenue, error)
	GetLeadsBySource(ctx context.Context) ([]core.LeadSourceCount, error)
	GetPipelineFunnel(ctx context.Context) ([]core.PipelineStageCount, error)
	GetClientRetention(ctx context.Context) (*core.ClientRetention, error)
	GetStaffAssignments(ctx context.Context, from, to time.Time) ([]core.StaffAssignment, error)
	GetSupplierPerformance(ctx context.Context, from, to time.Time) ([]core.SupplierPerformance, error)
	GetEquipmentUsage(ctx context.Context, from, to time.Time) ([]core.EquipmentUsage, error)

	// ── users and auth ────────────────────────────────────────────────────

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)
	GetUser(ctx context.Context, userID int) (*core.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*core.User, error)
}
