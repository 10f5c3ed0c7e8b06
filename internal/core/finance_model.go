package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event is a booked engagement for a contact. QuoteID is set when the
// client accepts a quote and becomes the event's financial anchor.
type Event struct {
	ID        int        `json:"id"`
	ContactID int        `json:"contact_id"`
	EventName string     `json:"event_name"`
	EventDate *time.Time `json:"event_date,omitempty"`
	Venue     string     `json:"venue"`
	QuoteID   *int       `json:"quote_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Partner is a referral partner who earns commissions on events.
type Partner struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Commission is a referral fee owed to a partner for one event.
type Commission struct {
	ID          int             `json:"id"`
	EventID     int             `json:"event_id"`
	PartnerID   int             `json:"partner_id"`
	PartnerName string          `json:"partner_name"` // joined from partners
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Expense is a direct out-of-pocket cost booked against an event.
type Expense struct {
	ID          int             `json:"id"`
	EventID     int             `json:"event_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
}

// PayrollEntry is a staff payment booked against an event.
type PayrollEntry struct {
	ID        int             `json:"id"`
	EventID   int             `json:"event_id"`
	StaffName string          `json:"staff_name"`
	Role      string          `json:"role"`
	Amount    decimal.Decimal `json:"amount"`
	WorkDate  time.Time       `json:"work_date"`
}

// FinanceService manages events and their cost-side records. Commissions,
// expenses, and payroll are the only records the business edits after
// creation, so each gets an update operation.
type FinanceService interface {
	CreateEvent(ctx context.Context, contactID int, name string, date *time.Time, venue string) (*Event, error)
	GetEvent(ctx context.Context, id int) (*Event, error)
	ListEvents(ctx context.Context, contactID int) ([]Event, error)

	CreatePartner(ctx context.Context, name, email string) (*Partner, error)
	ListPartners(ctx context.Context) ([]Partner, error)

	AddCommission(ctx context.Context, eventID, partnerID int, description string, amount decimal.Decimal) (*Commission, error)
	UpdateCommission(ctx context.Context, id int, description string, amount decimal.Decimal) (*Commission, error)
	DeleteCommission(ctx context.Context, id int) error
	ListCommissions(ctx context.Context, eventID int) ([]Commission, error)

	AddExpense(ctx context.Context, eventID int, description string, amount decimal.Decimal, date time.Time) (*Expense, error)
	UpdateExpense(ctx context.Context, id int, description string, amount decimal.Decimal, date time.Time) (*Expense, error)
	DeleteExpense(ctx context.Context, id int) error
	ListExpenses(ctx context.Context, eventID int) ([]Expense, error)

	AddPayroll(ctx context.Context, eventID int, staffName, role string, amount decimal.Decimal, workDate time.Time) (*PayrollEntry, error)
	UpdatePayroll(ctx context.Context, id int, staffName, role string, amount decimal.Decimal, workDate time.Time) (*PayrollEntry, error)
	DeletePayroll(ctx context.Context, id int) error
	ListPayroll(ctx context.Context, eventID int) ([]PayrollEntry, error)
}
