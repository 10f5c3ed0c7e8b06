package app

import (
	"desserts-ops/internal/core"

	"github.com/shopspring/decimal"
)

// ContactListResult is returned by ListContacts.
type ContactListResult struct {
	Contacts []core.Contact
	Status   string // the filter that was applied, "" for all
}

// MenuListResult is returned by ListMenuItems.
type MenuListResult struct {
	Items []core.MenuItem
}

// QuoteListResult is returned by ListQuotes.
type QuoteListResult struct {
	Quotes    []core.Quote
	ContactID int
	Status    string
}

// QuotePreviewResult is the priced basket returned by PreviewQuote. Nothing
// is persisted; FormattedTotal is ready for display in the builder footer.
type QuotePreviewResult struct {
	Lines          []core.Selection
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	FormattedTotal string
}

// UserSession is returned by AuthenticateUser. ContactID is non-nil only for
// portal accounts and scopes what the session may read.
type UserSession struct {
	UserID    int
	Username  string
	Role      string
	ContactID *int
}
