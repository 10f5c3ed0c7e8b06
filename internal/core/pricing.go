package core

import "github.com/shopspring/decimal"

// PriceTier selects which of the two catalog prices a contact pays.
type PriceTier string

const (
	TierPublic  PriceTier = "Public/Direct"
	TierPartner PriceTier = "Partner/Vendor"
)

// Selection is one line of an in-progress quote. UnitPrice is fixed at the
// moment the item is added; later catalog price edits never touch it.
type Selection struct {
	MenuItemID int
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// LineTotal returns Quantity × UnitPrice for this selection.
func (s Selection) LineTotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Totals is the financial snapshot of a quote: exactly the three numbers
// persisted on the quote header at save time.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ResolveUnitPrice returns the catalog price applicable to the given tier.
// Any tier other than Partner/Vendor pays the public price.
func ResolveUnitPrice(item *MenuItem, tier PriceTier) decimal.Decimal {
	if tier == TierPartner {
		return item.PartnerPrice
	}
	return item.PublicPrice
}

// AddOrIncrementLine adds item to the selection list, or bumps its quantity
// by one if a line for the same menu item already exists. The unit price is
// resolved once, at add time.
func AddOrIncrementLine(selections []Selection, item *MenuItem, tier PriceTier) []Selection {
	for i := range selections {
		if selections[i].MenuItemID == item.ID {
			out := make([]Selection, len(selections))
			copy(out, selections)
			out[i].Quantity++
			return out
		}
	}
	out := make([]Selection, len(selections), len(selections)+1)
	copy(out, selections)
	return append(out, Selection{
		MenuItemID: item.ID,
		Name:       item.Name,
		Quantity:   1,
		UnitPrice:  ResolveUnitPrice(item, tier),
	})
}

// SetQuantity replaces the quantity on the matching line. Quantities below 1
// leave the line untouched: this mirrors the long-standing builder
// behavior, where a cleared or negative quantity field keeps the prior
// value rather than raising an error.
func SetQuantity(selections []Selection, menuItemID, quantity int) []Selection {
	if quantity <= 0 {
		return selections
	}
	out := make([]Selection, len(selections))
	copy(out, selections)
	for i := range out {
		if out[i].MenuItemID == menuItemID {
			out[i].Quantity = quantity
		}
	}
	return out
}

// RemoveLine drops the matching line. Removing an absent ID is a no-op.
func RemoveLine(selections []Selection, menuItemID int) []Selection {
	out := make([]Selection, 0, len(selections))
	for _, s := range selections {
		if s.MenuItemID != menuItemID {
			out = append(out, s)
		}
	}
	return out
}

// ComputeTotals derives the full financial snapshot from scratch. It is
// recomputed on every change rather than maintained incrementally: a quote
// carries at most tens of lines, and a full pass cannot drift.
// A nil rate means no tax.
func ComputeTotals(selections []Selection, rate *TaxRate) Totals {
	subtotal := decimal.Zero
	for _, s := range selections {
		subtotal = subtotal.Add(s.LineTotal())
	}
	tax := decimal.Zero
	if rate != nil {
		tax = subtotal.Mul(rate.Percentage).Div(decimal.NewFromInt(100))
	}
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}
