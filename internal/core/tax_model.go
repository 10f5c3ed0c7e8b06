package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is a flat percentage applied to a quote's subtotal. Saved quotes
// snapshot the computed dollar amount, so editing a rate never changes what
// a historical quote shows.
type TaxRate struct {
	ID         int             `json:"id"`
	Name       string          `json:"rate_name"`
	Percentage decimal.Decimal `json:"rate_percentage"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TaxGroupMember is one rate inside a group, ordered by Priority.
type TaxGroupMember struct {
	Rate     TaxRate `json:"rate"`
	Priority int     `json:"priority"`
}

// TaxGroup is a named bundle of rates. Its effective percentage is the
// plain sum of member percentages, with no compounding. The quote builder only
// offers single rates; groups exist for settings display and the tax report.
type TaxGroup struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	IsDefault bool             `json:"is_default"`
	Members   []TaxGroupMember `json:"members"`
	CreatedAt time.Time        `json:"created_at"`
}

// EffectivePercentage sums the member rate percentages.
func (g *TaxGroup) EffectivePercentage() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range g.Members {
		sum = sum.Add(m.Rate.Percentage)
	}
	return sum
}

// TaxService manages tax rates and groups.
type TaxService interface {
	CreateTaxRate(ctx context.Context, name string, percentage decimal.Decimal) (*TaxRate, error)
	UpdateTaxRate(ctx context.Context, id int, name string, percentage decimal.Decimal, isActive bool) (*TaxRate, error)
	GetTaxRate(ctx context.Context, id int) (*TaxRate, error)
	ListTaxRates(ctx context.Context, activeOnly bool) ([]TaxRate, error)

	CreateTaxGroup(ctx context.Context, name string, isDefault bool, rateIDs []int) (*TaxGroup, error)
	// UpdateTaxGroup replaces the entire membership list (delete-then-reinsert,
	// one transaction). rateIDs order defines priority.
	UpdateTaxGroup(ctx context.Context, id int, name string, isDefault bool, rateIDs []int) (*TaxGroup, error)
	DeleteTaxGroup(ctx context.Context, id int) error
	GetTaxGroup(ctx context.Context, id int) (*TaxGroup, error)
	ListTaxGroups(ctx context.Context) ([]TaxGroup, error)
}
