package app

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactRequest is the input for creating or updating a contact.
type ContactRequest struct {
	FullName      string
	Email         string
	Phone         string
	Company       string
	Status        string // defaults to "Lead"
	PipelineStage string // defaults to "New"
	LeadSource    string
	PriceTier     string // defaults to "Public/Direct"
}

// MenuItemRequest is the input for creating or updating a menu item.
type MenuItemRequest struct {
	Name         string
	Category     string
	Description  string
	ItemCost     decimal.Decimal
	PublicPrice  decimal.Decimal
	PartnerPrice decimal.Decimal
	IsActive     bool
}

// RecipeLineInput is one ingredient line in a SetRecipe call.
type RecipeLineInput struct {
	IngredientID   int
	QuantityNeeded decimal.Decimal
}

// QuoteRequest is the input for previewing or creating a quote. Lines carry
// only item and quantity; unit prices are resolved server-side from the
// contact's price tier.
type QuoteRequest struct {
	ContactID int
	QuoteName string
	Message   string
	Currency  string // defaults to "USD"
	TaxRateID *int   // nil means no tax
	Lines     []QuoteLineRequest
}

// QuoteLineRequest is a single line within a QuoteRequest.
type QuoteLineRequest struct {
	MenuItemID int
	Quantity   int
}

// InvoiceRequest is the input for raising an invoice from an accepted quote.
type InvoiceRequest struct {
	QuoteID       int
	InvoiceNumber string
	DueDate       time.Time
}

// PaymentRequest is the input for recording a payment against an invoice.
type PaymentRequest struct {
	InvoiceID int
	Amount    decimal.Decimal
	Method    string // defaults to "Bank Transfer"
	PaidAt    time.Time
}

// EventRequest is the input for creating an event.
type EventRequest struct {
	ContactID int
	Name      string
	Date      *time.Time
	Venue     string
}

// CommissionRequest is the input for recording a partner commission.
type CommissionRequest struct {
	EventID     int
	PartnerID   int
	Description string
	Amount      decimal.Decimal
}

// ExpenseRequest is the input for recording an event expense.
type ExpenseRequest struct {
	EventID     int
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// PayrollRequest is the input for recording an event payroll entry.
type PayrollRequest struct {
	EventID   int
	StaffName string
	Role      string
	Amount    decimal.Decimal
	WorkDate  time.Time
}

// EquipmentRequest is the input for creating or updating a piece of event
// equipment.
type EquipmentRequest struct {
	Name          string
	Category      string
	QuantityOwned int
	Notes         string
}

// SupplierRequest is the input for creating or updating a supplier.
type SupplierRequest struct {
	Name        string
	ContactName string
	Email       string
	Phone       string
}

// POLineRequest is the input for adding a line to a purchase order.
type POLineRequest struct {
	POID        int
	Description string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
}

// CreateUserRequest is the input for provisioning a user account.
// ContactID links portal accounts to the contact whose quotes they may see.
type CreateUserRequest struct {
	Username  string
	Email     string
	Password  string
	Role      string
	ContactID *int
}
