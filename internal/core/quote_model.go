package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a priced proposal for a contact. Subtotal, TaxAmount, and
// TotalAmount are snapshots frozen at save time: redisplay always uses
// these stored figures, never a re-derivation from current catalog or tax
// data.
type Quote struct {
	ID             int             `json:"id"`
	ContactID      int             `json:"contact_id"`
	QuoteName      string          `json:"quote_name"`
	Message        string          `json:"message"`
	Status         QuoteStatus     `json:"status"`
	QuoteDate      time.Time       `json:"quote_date"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Currency       string          `json:"currency"`
	TaxRateID      *int            `json:"tax_rate_id,omitempty"`
	SignedAt       *time.Time      `json:"signed_at,omitempty"`
	Lines          []QuoteLineItem `json:"lines"`
}

// QuoteLineItem is one stored line. UnitPrice and TotalPrice are the values
// captured when the line was added; TotalPrice is always quantity × the
// stored unit price.
type QuoteLineItem struct {
	ID           int             `json:"id"`
	QuoteID      int             `json:"quote_id"`
	MenuItemID   int             `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"` // joined from menu_items; empty if the item was removed
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// QuoteInput carries everything needed to persist a new draft quote.
// Totals are recomputed server-side from Selections; client-side figures
// are never trusted.
type QuoteInput struct {
	ContactID      int
	QuoteName      string
	Message        string
	ExpirationDate *time.Time
	Currency       string
	TaxRateID      *int
	Selections     []Selection
}

// QuoteService manages the quote lifecycle.
type QuoteService interface {
	// CreateQuote validates selections, recomputes totals, and writes the
	// header plus all line items in a single transaction. A failure at any
	// point leaves no orphaned header.
	CreateQuote(ctx context.Context, in QuoteInput) (*Quote, error)
	GetQuote(ctx context.Context, id int) (*Quote, error)
	// ListQuotes filters by contact (0 = all) and status ("" = all),
	// newest first.
	ListQuotes(ctx context.Context, contactID int, status QuoteStatus) ([]Quote, error)
	SendQuote(ctx context.Context, id int) (*Quote, error)
	DeclineQuote(ctx context.Context, id int) (*Quote, error)
	// AcceptQuote runs the full acceptance workflow in one transaction:
	// quote → Accepted with signed_at, owning contact promoted to
	// Active Client / Won with a conversion date, and the contact's
	// unlinked event (if any) linked to this quote.
	AcceptQuote(ctx context.Context, id int) (*Quote, error)
}
