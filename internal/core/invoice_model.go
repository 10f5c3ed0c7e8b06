package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus values. Partial means amount_paid is positive but below
// the total; Paid means the total has been covered.
const (
	InvoiceDraft   = "Draft"
	InvoiceSent    = "Sent"
	InvoicePartial = "Partial"
	InvoicePaid    = "Paid"
)

// Invoice bills an accepted quote. TotalAmount is copied from the quote at
// creation; it is another snapshot, not a live reference.
type Invoice struct {
	ID            int             `json:"id"`
	QuoteID       int             `json:"quote_id"`
	ContactID     int             `json:"contact_id"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Payment is one recorded receipt against an invoice.
type Payment struct {
	ID            int             `json:"id"`
	InvoiceID     int             `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	PaidAt        time.Time       `json:"paid_at"`
}

// InvoiceService raises invoices from accepted quotes and records payments.
type InvoiceService interface {
	// CreateInvoice raises an invoice for an Accepted quote, copying the
	// quote's total and currency.
	CreateInvoice(ctx context.Context, quoteID int, invoiceNumber string, dueDate time.Time) (*Invoice, error)
	GetInvoice(ctx context.Context, id int) (*Invoice, error)
	// ListInvoices filters by contact (0 = all) and status ("" = all).
	ListInvoices(ctx context.Context, contactID int, status string) ([]Invoice, error)
	// RecordPayment inserts the payment and advances amount_paid and status
	// in the same transaction.
	RecordPayment(ctx context.Context, invoiceID int, amount decimal.Decimal, method string, paidAt time.Time) (*Invoice, error)
	ListPayments(ctx context.Context, invoiceID int) ([]Payment, error)
}
