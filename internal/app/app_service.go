package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"desserts-ops/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type appService struct {
	pool      *pgxpool.Pool
	contacts  core.ContactService
	catalog   core.CatalogService
	taxes     core.TaxService
	quotes    core.QuoteService
	invoices  core.InvoiceService
	finance   core.FinanceService
	equipment core.EquipmentService
	purchases core.PurchaseService
	reporting core.ReportingService
	users     core.UserService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	pool *pgxpool.Pool,
	contacts core.ContactService,
	catalog core.CatalogService,
	taxes core.TaxService,
	quotes core.QuoteService,
	invoices core.InvoiceService,
	finance core.FinanceService,
	equipment core.EquipmentService,
	purchases core.PurchaseService,
	reporting core.ReportingService,
	users core.UserService,
) ApplicationService {
	return &appService{
		pool:      pool,
		contacts:  contacts,
		catalog:   catalog,
		taxes:     taxes,
		quotes:    quotes,
		invoices:  invoices,
		finance:   finance,
		equipment: equipment,
		purchases: purchases,
		reporting: reporting,
		users:     users,
	}
}

// ── contacts ──────────────────────────────────────────────────────────────────

func (s *appService) ListContacts(ctx context.Context, status string) (*ContactListResult, error) {
	contacts, err := s.contacts.ListContacts(ctx, status)
	if err != nil {
		return nil, err
	}
	return &ContactListResult{Contacts: contacts, Status: status}, nil
}

func (s *appService) GetContact(ctx context.Context, id int) (*core.Contact, error) {
	return s.contacts.GetContact(ctx, id)
}

func (s *appService) CreateContact(ctx context.Context, req ContactRequest) (*core.Contact, error) {
	return s.contacts.CreateContact(ctx, contactInput(req))
}

func (s *appService) UpdateContact(ctx context.Context, id int, req ContactRequest) (*core.Contact, error) {
	return s.contacts.UpdateContact(ctx, id, contactInput(req))
}

func contactInput(req ContactRequest) core.ContactInput {
	return core.ContactInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		Status:        req.Status,
		PipelineStage: req.PipelineStage,
		LeadSource:    req.LeadSource,
		PriceTier:     core.PriceTier(req.PriceTier),
	}
}

// ── catalog ───────────────────────────────────────────────────────────────────

func (s *appService) ListMenuItems(ctx context.Context, activeOnly bool) (*MenuListResult, error) {
	items, err := s.catalog.ListMenuItems(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return &MenuListResult{Items: items}, nil
}

func (s *appService) GetMenuItem(ctx context.Context, id int) (*core.MenuItem, error) {
	return s.catalog.GetMenuItem(ctx, id)
}

func (s *appService) CreateMenuItem(ctx context.Context, req MenuItemRequest) (*core.MenuItem, error) {
	return s.catalog.CreateMenuItem(ctx, menuItemInput(req))
}

func (s *appService) UpdateMenuItem(ctx context.Context, id int, req MenuItemRequest) (*core.MenuItem, error) {
	return s.catalog.UpdateMenuItem(ctx, id, menuItemInput(req))
}

func (s *appService) DeactivateMenuItem(ctx context.Context, id int) error {
	return s.catalog.DeactivateMenuItem(ctx, id)
}

func (s *appService) DeleteMenuItem(ctx context.Context, id int) error {
	return s.catalog.DeleteMenuItem(ctx, id)
}

func (s *appService) ListIngredients(ctx context.Context) ([]core.Ingredient, error) {
	return s.catalog.ListIngredients(ctx)
}

func (s *appService) GetRecipe(ctx context.Context, menuItemID int) ([]core.RecipeLine, error) {
	return s.catalog.GetRecipe(ctx, menuItemID)
}

func (s *appService) SetRecipe(ctx context.Context, menuItemID int, lines []RecipeLineInput) error {
	recipe := make([]core.RecipeLine, len(lines))
	for i, l := range lines {
		recipe[i] = core.RecipeLine{
			IngredientID:   l.IngredientID,
			QuantityNeeded: l.QuantityNeeded,
		}
	}
	return s.catalog.SetRecipe(ctx, menuItemID, recipe)
}

func menuItemInput(req MenuItemRequest) core.MenuItemInput {
	return core.MenuItemInput{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		ItemCost:     req.ItemCost,
		PublicPrice:  req.PublicPrice,
		PartnerPrice: req.PartnerPrice,
		IsActive:     req.IsActive,
	}
}

// ── taxes ─────────────────────────────────────────────────────────────────────

func (s *appService) ListTaxRates(ctx context.Context, activeOnly bool) ([]core.TaxRate, error) {
	return s.taxes.ListTaxRates(ctx, activeOnly)
}

func (s *appService) CreateTaxRate(ctx context.Context, name string, percentage decimal.Decimal) (*core.TaxRate, error) {
	return s.taxes.CreateTaxRate(ctx, name, percentage)
}

func (s *appService) UpdateTaxRate(ctx context.Context, id int, name string, percentage decimal.Decimal, isActive bool) (*core.TaxRate, error) {
	return s.taxes.UpdateTaxRate(ctx, id, name, percentage, isActive)
}

func (s *appService) ListTaxGroups(ctx context.Context) ([]core.TaxGroup, error) {
	return s.taxes.ListTaxGroups(ctx)
}

func (s *appService) CreateTaxGroup(ctx context.Context, name string, isDefault bool, rateIDs []int) (*core.TaxGroup, error) {
	return s.taxes.CreateTaxGroup(ctx, name, isDefault, rateIDs)
}

func (s *appService) UpdateTaxGroup(ctx context.Context, id int, name string, isDefault bool, rateIDs []int) (*core.TaxGroup, error) {
	return s.taxes.UpdateTaxGroup(ctx, id, name, isDefault, rateIDs)
}

func (s *appService) DeleteTaxGroup(ctx context.Context, id int) error {
	return s.taxes.DeleteTaxGroup(ctx, id)
}

// ── quotes ────────────────────────────────────────────────────────────────────

// PreviewQuote prices the requested basket without persisting anything.
func (s *appService) PreviewQuote(ctx context.Context, req QuoteRequest) (*QuotePreviewResult, error) {
	selections, currency, rate, err := s.priceBasket(ctx, req)
	if err != nil {
		return nil, err
	}
	totals := core.ComputeTotals(selections, rate)
	return &QuotePreviewResult{
		Lines:          selections,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		FormattedTotal: core.FormatMoney(totals.Total, currency),
	}, nil
}

func (s *appService) CreateQuote(ctx context.Context, req QuoteRequest) (*core.Quote, error) {
	selections, currency, _, err := s.priceBasket(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.quotes.CreateQuote(ctx, core.QuoteInput{
		ContactID:  req.ContactID,
		QuoteName:  req.QuoteName,
		Message:    req.Message,
		Currency:   currency,
		TaxRateID:  req.TaxRateID,
		Selections: selections,
	})
}

func (s *appService) GetQuote(ctx context.Context, id int) (*core.Quote, error) {
	return s.quotes.GetQuote(ctx, id)
}

func (s *appService) ListQuotes(ctx context.Context, contactID int, status string) (*QuoteListResult, error) {
	quotes, err := s.quotes.ListQuotes(ctx, contactID, core.QuoteStatus(status))
	if err != nil {
		return nil, err
	}
	return &QuoteListResult{Quotes: quotes, ContactID: contactID, Status: status}, nil
}

func (s *appService) SendQuote(ctx context.Context, id int) (*core.Quote, error) {
	return s.quotes.SendQuote(ctx, id)
}

func (s *appService) DeclineQuote(ctx context.Context, id int) (*core.Quote, error) {
	return s.quotes.DeclineQuote(ctx, id)
}

func (s *appService) AcceptQuote(ctx context.Context, id int) (*core.Quote, error) {
	return s.quotes.AcceptQuote(ctx, id)
}

// validateQuoteLines rejects request lines the selection helpers would
// otherwise coerce: a quantity below 1 must not turn into a quantity-1
// line, and a menu item repeated across lines must not silently keep
// whichever quantity came last.
func validateQuoteLines(lines []QuoteLineRequest) error {
	seen := make(map[int]bool, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return &core.ValidationError{Field: "quantity", Message: fmt.Sprintf("must be positive for menu item %d", l.MenuItemID)}
		}
		if seen[l.MenuItemID] {
			return &core.ValidationError{Field: "menu_item_id", Message: fmt.Sprintf("menu item %d appears more than once", l.MenuItemID)}
		}
		seen[l.MenuItemID] = true
	}
	return nil
}

// priceBasket resolves a request's lines into priced selections using the
// contact's tier. The unit price each line gets here is the one the stored
// quote keeps forever.
func (s *appService) priceBasket(ctx context.Context, req QuoteRequest) ([]core.Selection, string, *core.TaxRate, error) {
	if err := validateQuoteLines(req.Lines); err != nil {
		return nil, "", nil, err
	}

	contact, err := s.contacts.GetContact(ctx, req.ContactID)
	if err != nil {
		return nil, "", nil, fmt.Errorf("contact %d: %w", req.ContactID, err)
	}

	var selections []core.Selection
	for _, l := range req.Lines {
		item, err := s.catalog.GetMenuItem(ctx, l.MenuItemID)
		if err != nil {
			return nil, "", nil, fmt.Errorf("menu item %d: %w", l.MenuItemID, err)
		}
		selections = core.AddOrIncrementLine(selections, item, contact.PriceTier)
		selections = core.SetQuantity(selections, item.ID, l.Quantity)
	}

	var rate *core.TaxRate
	if req.TaxRateID != nil {
		rate, err = s.taxes.GetTaxRate(ctx, *req.TaxRateID)
		if err != nil {
			return nil, "", nil, fmt.Errorf("tax rate %d: %w", *req.TaxRateID, err)
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	return selections, currency, rate, nil
}

// ── invoices ──────────────────────────────────────────────────────────────────

func (s *appService) CreateInvoice(ctx context.Context, req InvoiceRequest) (*core.Invoice, error) {
	return s.invoices.CreateInvoice(ctx, req.QuoteID, req.InvoiceNumber, req.DueDate)
}

func (s *appService) GetInvoice(ctx context.Context, id int) (*core.Invoice, error) {
	return s.invoices.GetInvoice(ctx, id)
}

func (s *appService) ListInvoices(ctx context.Context, contactID int, status string) ([]core.Invoice, error) {
	return s.invoices.ListInvoices(ctx, contactID, status)
}

func (s *appService) RecordPayment(ctx context.Context, req PaymentRequest) (*core.Invoice, error) {
	method := req.Method
	if method == "" {
		method = "Bank Transfer"
	}
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	return s.invoices.RecordPayment(ctx, req.InvoiceID, req.Amount, method, paidAt)
}

func (s *appService) ListPayments(ctx context.Context, invoiceID int) ([]core.Payment, error) {
	return s.invoices.ListPayments(ctx, invoiceID)
}

// ── events and finance ────────────────────────────────────────────────────────

func (s *appService) ListEvents(ctx context.Context, contactID int) ([]core.Event, error) {
	return s.finance.ListEvents(ctx, contactID)
}

func (s *appService) GetEvent(ctx context.Context, id int) (*core.Event, error) {
	return s.finance.GetEvent(ctx, id)
}

func (s *appService) CreateEvent(ctx context.Context, req EventRequest) (*core.Event, error) {
	return s.finance.CreateEvent(ctx, req.ContactID, req.Name, req.Date, req.Venue)
}

func (s *appService) ListPartners(ctx context.Context) ([]core.Partner, error) {
	return s.finance.ListPartners(ctx)
}

func (s *appService) CreatePartner(ctx context.Context, name, email string) (*core.Partner, error) {
	return s.finance.CreatePartner(ctx, name, email)
}

func (s *appService) ListCommissions(ctx context.Context, eventID int) ([]core.Commission, error) {
	return s.finance.ListCommissions(ctx, eventID)
}

func (s *appService) AddCommission(ctx context.Context, req CommissionRequest) (*core.Commission, error) {
	return s.finance.AddCommission(ctx, req.EventID, req.PartnerID, req.Description, req.Amount)
}

func (s *appService) UpdateCommission(ctx context.Context, id int, description string, amount decimal.Decimal) (*core.Commission, error) {
	return s.finance.UpdateCommission(ctx, id, description, amount)
}

func (s *appService) DeleteCommission(ctx context.Context, id int) error {
	return s.finance.DeleteCommission(ctx, id)
}

func (s *appService) ListExpenses(ctx context.Context, eventID int) ([]core.Expense, error) {
	return s.finance.ListExpenses(ctx, eventID)
}

func (s *appService) AddExpense(ctx context.Context, req ExpenseRequest) (*core.Expense, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	return s.finance.AddExpense(ctx, req.EventID, req.Description, req.Amount, date)
}

func (s *appService) UpdateExpense(ctx context.Context, id int, description string, amount decimal.Decimal, date time.Time) (*core.Expense, error) {
	return s.finance.UpdateExpense(ctx, id, description, amount, date)
}

func (s *appService) DeleteExpense(ctx context.Context, id int) error {
	return s.finance.DeleteExpense(ctx, id)
}

func (s *appService) ListPayroll(ctx context.Context, eventID int) ([]core.PayrollEntry, error) {
	return s.finance.ListPayroll(ctx, eventID)
}

func (s *appService) AddPayroll(ctx context.Context, req PayrollRequest) (*core.PayrollEntry, error) {
	workDate := req.WorkDate
	if workDate.IsZero() {
		workDate = time.Now()
	}
	return s.finance.AddPayroll(ctx, req.EventID, req.StaffName, req.Role, req.Amount, workDate)
}

func (s *appService) UpdatePayroll(ctx context.Context, id int, staffName, role string, amount decimal.Decimal, workDate time.Time) (*core.PayrollEntry, error) {
	return s.finance.UpdatePayroll(ctx, id, staffName, role, amount, workDate)
}

func (s *appService) DeletePayroll(ctx context.Context, id int) error {
	return s.finance.DeletePayroll(ctx, id)
}

// ── equipment ─────────────────────────────────────────────────────────────────

func (s *appService) ListEquipment(ctx context.Context) ([]core.Equipment, error) {
	return s.equipment.ListEquipment(ctx)
}

func (s *appService) CreateEquipment(ctx context.Context, req EquipmentRequest) (*core.Equipment, error) {
	return s.equipment.CreateEquipment(ctx, req.Name, req.Category, req.QuantityOwned, req.Notes)
}

func (s *appService) UpdateEquipment(ctx context.Context, id int, req EquipmentRequest) (*core.Equipment, error) {
	return s.equipment.UpdateEquipment(ctx, id, req.Name, req.Category, req.QuantityOwned, req.Notes)
}

func (s *appService) DeleteEquipment(ctx context.Context, id int) error {
	return s.equipment.DeleteEquipment(ctx, id)
}

func (s *appService) ListEventEquipment(ctx context.Context, eventID int) ([]core.EquipmentAssignment, error) {
	return s.equipment.ListForEvent(ctx, eventID)
}

func (s *appService) AssignEquipment(ctx context.Context, eventID, equipmentID, quantity int) (*core.EquipmentAssignment, error) {
	return s.equipment.AssignToEvent(ctx, eventID, equipmentID, quantity)
}

func (s *appService) UnassignEquipment(ctx context.Context, eventID, equipmentID int) error {
	return s.equipment.UnassignFromEvent(ctx, eventID, equipmentID)
}

// ── purchasing ────────────────────────────────────────────────────────────────

func (s *appService) ListSuppliers(ctx context.Context) ([]core.Supplier, error) {
	return s.purchases.ListSuppliers(ctx)
}

func (s *appService) CreateSupplier(ctx context.Context, req SupplierRequest) (*core.Supplier, error) {
	return s.purchases.CreateSupplier(ctx, req.Name, req.ContactName, req.Email, req.Phone)
}

func (s *appService) UpdateSupplier(ctx context.Context, id int, req SupplierRequest) (*core.Supplier, error) {
	return s.purchases.UpdateSupplier(ctx, id, req.Name, req.ContactName, req.Email, req.Phone)
}

func (s *appService) ListPurchaseOrders(ctx context.Context, supplierID int) ([]core.PurchaseOrder, error) {
	return s.purchases.ListPurchaseOrders(ctx, supplierID)
}

func (s *appService) GetPurchaseOrder(ctx context.Context, id int) (*core.PurchaseOrder, error) {
	return s.purchases.GetPurchaseOrder(ctx, id)
}

func (s *appService) CreatePurchaseOrder(ctx context.Context, supplierID int, orderDate time.Time) (*core.PurchaseOrder, error) {
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	return s.purchases.CreatePurchaseOrder(ctx, supplierID, orderDate)
}

func (s *appService) AddPOLine(ctx context.Context, req POLineRequest) (*core.PurchaseOrder, error) {
	return s.purchases.AddPOLine(ctx, req.POID, req.Description, req.Quantity, req.UnitCost)
}

func (s *appService) RemovePOLine(ctx context.Context, poID, lineID int) (*core.PurchaseOrder, error) {
	return s.purchases.RemovePOLine(ctx, poID, lineID)
}

func (s *appService) SetPOStatus(ctx context.Context, poID int, status string) (*core.PurchaseOrder, error) {
	return s.purchases.SetPOStatus(ctx, poID, status)
}

// ── reports ───────────────────────────────────────────────────────────────────

func (s *appService) GetEventPnL(ctx context.Context, eventID int) (*core.EventPnL, error) {
	return s.reporting.GetEventPnL(ctx, eventID)
}

func (s *appService) GetTaxReport(ctx context.Context, from, to time.Time) (*core.TaxReport, error) {
	return s.reporting.GetTaxReport(ctx, from, to)
}

func (s *appService) GetInventoryNeeds(ctx context.Context, from, to time.Time) ([]core.InventoryNeed, error) {
	return s.reporting.GetInventoryNeeds(ctx, from, to)
}

func (s *appService) GetServicesBooked(ctx context.Context, from, to time.Time) ([]core.ServiceBooked, error) {
	return s.reporting.GetServicesBooked(ctx, from, to)
}

func (s *appService) GetUnpaidInvoices(ctx context.Context) ([]core.Invoice, error) {
	return s.reporting.GetUnpaidInvoices(ctx)
}

func (s *appService) GetCommissionTotals(ctx context.Context, from, to time.Time) ([]core.PartnerCommissionTotal, error) {
	return s.reporting.GetCommissionTotals(ctx, from, to)
}

func (s *appService) GetRevenueByCurrency(ctx context.Context, from, to time.Time) ([]core.CurrencyRevenue, error) {
	return s.reporting.GetRevenueByCurrency(ctx, from, to)
}

func (s *appService) GetLeadsBySource(ctx context.Context) ([]core.LeadSourceCount, error) {
	return s.reporting.GetLeadsBySource(ctx)
}

func (s *appService) GetPipelineFunnel(ctx context.Context) ([]core.PipelineStageCount, error) {
	return s.reporting.GetPipelineFunnel(ctx)
}

func (s *appService) GetClientRetention(ctx context.Context) (*core.ClientRetention, error) {
	return s.reporting.GetClientRetention(ctx)
}

func (s *appService) GetStaffAssignments(ctx context.Context, from, to time.Time) ([]core.StaffAssignment, error) {
	return s.reporting.GetStaffAssignments(ctx, from, to)
}

func (s *appService) GetSupplierPerformance(ctx context.Context, from, to time.Time) ([]core.SupplierPerformance, error) {
	return s.reporting.GetSupplierPerformance(ctx, from, to)
}

func (s *appService) GetEquipmentUsage(ctx context.Context, from, to time.Time) ([]core.EquipmentUsage, error) {
	return s.reporting.GetEquipmentUsage(ctx, from, to)
}

// ── users and auth ────────────────────────────────────────────────────────────

// ErrInvalidCredentials is returned for an unknown username and for a wrong
// password alike, so login responses never reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &UserSession{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ContactID: user.ContactID,
	}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*core.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *appService) CreateUser(ctx context.Context, req CreateUserRequest) (*core.User, error) {
	return s.users.CreateUser(ctx, req.Username, req.Email, req.Password, req.Role, req.ContactID)
}
