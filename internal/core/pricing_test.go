package core_test

import (
	"testing"

	"desserts-ops/internal/core"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testItem() *core.MenuItem {
	return &core.MenuItem{
		ID:           1,
		Name:         "Tres Leches Cake",
		PublicPrice:  dec("10.00"),
		PartnerPrice: dec("8.00"),
	}
}

func TestResolveUnitPrice(t *testing.T) {
	item := testItem()

	tests := []struct {
		name string
		tier core.PriceTier
		want string
	}{
		{"public tier", core.TierPublic, "10.00"},
		{"partner tier", core.TierPartner, "8.00"},
		{"unknown tier falls back to public", core.PriceTier("VIP"), "10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ResolveUnitPrice(item, tt.tier)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ResolveUnitPrice() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAddOrIncrementLine_DedupesByItem(t *testing.T) {
	item := testItem()

	sel := core.AddOrIncrementLine(nil, item, core.TierPublic)
	sel = core.AddOrIncrementLine(sel, item, core.TierPublic)

	if len(sel) != 1 {
		t.Fatalf("expected 1 line after adding same item twice, got %d", len(sel))
	}
	if sel[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", sel[0].Quantity)
	}
}

func TestAddOrIncrementLine_PriceFixedAtAddTime(t *testing.T) {
	item := testItem()

	sel := core.AddOrIncrementLine(nil, item, core.TierPartner)

	// A catalog price edit mid-session must not touch the line.
	item.PartnerPrice = dec("99.00")
	sel = core.AddOrIncrementLine(sel, item, core.TierPartner)

	if !sel[0].UnitPrice.Equal(dec("8.00")) {
		t.Errorf("unit price changed after catalog edit: got %s, want 8.00", sel[0].UnitPrice)
	}
}

func TestSetQuantity(t *testing.T) {
	base := []core.Selection{{MenuItemID: 1, Quantity: 3, UnitPrice: dec("5.00")}}

	tests := []struct {
		name     string
		itemID   int
		quantity int
		want     int
	}{
		{"positive quantity replaces", 1, 7, 7},
		{"zero is ignored", 1, 0, 3},
		{"negative is ignored", 1, -2, 3},
		{"absent id is a no-op", 99, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.SetQuantity(base, tt.itemID, tt.quantity)
			if got[0].Quantity != tt.want {
				t.Errorf("quantity = %d, want %d", got[0].Quantity, tt.want)
			}
			// base must be untouched (value semantics)
			if base[0].Quantity != 3 {
				t.Errorf("input slice mutated: quantity = %d", base[0].Quantity)
			}
		})
	}
}

func TestRemoveLine(t *testing.T) {
	sel := []core.Selection{
		{MenuItemID: 1, Quantity: 1, UnitPrice: dec("5.00")},
		{MenuItemID: 2, Quantity: 2, UnitPrice: dec("3.00")},
	}

	got := core.RemoveLine(sel, 1)
	if len(got) != 1 || got[0].MenuItemID != 2 {
		t.Errorf("RemoveLine left %+v", got)
	}

	// absent ID: no error, no change
	got = core.RemoveLine(got, 42)
	if len(got) != 1 {
		t.Errorf("RemoveLine with absent id changed the list: %+v", got)
	}
}

func TestComputeTotals(t *testing.T) {
	vat16 := &core.TaxRate{ID: 1, Name: "VAT 16%", Percentage: dec("16")}

	tests := []struct {
		name         string
		selections   []core.Selection
		rate         *core.TaxRate
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "empty selections",
			selections:   nil,
			rate:         vat16,
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
		{
			name: "partner tier, no tax",
			selections: []core.Selection{
				{MenuItemID: 1, Quantity: 3, UnitPrice: dec("8.00")},
			},
			rate:         nil,
			wantSubtotal: "24.00",
			wantTax:      "0",
			wantTotal:    "24.00",
		},
		{
			name: "partner tier with VAT 16%",
			selections: []core.Selection{
				{MenuItemID: 1, Quantity: 3, UnitPrice: dec("8.00")},
			},
			rate:         vat16,
			wantSubtotal: "24.00",
			wantTax:      "3.84",
			wantTotal:    "27.84",
		},
		{
			name: "multiple lines",
			selections: []core.Selection{
				{MenuItemID: 1, Quantity: 2, UnitPrice: dec("10.00")},
				{MenuItemID: 2, Quantity: 5, UnitPrice: dec("4.50")},
			},
			rate:         vat16,
			wantSubtotal: "42.50",
			wantTax:      "6.80",
			wantTotal:    "49.30",
		},
		{
			name: "zero-percent rate",
			selections: []core.Selection{
				{MenuItemID: 1, Quantity: 1, UnitPrice: dec("9.99")},
			},
			rate:         &core.TaxRate{ID: 2, Name: "Exempt", Percentage: dec("0")},
			wantSubtotal: "9.99",
			wantTax:      "0",
			wantTotal:    "9.99",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ComputeTotals(tt.selections, tt.rate)
			if !got.Subtotal.Equal(dec(tt.wantSubtotal)) {
				t.Errorf("subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			}
			if !got.TaxAmount.Equal(dec(tt.wantTax)) {
				t.Errorf("tax = %s, want %s", got.TaxAmount, tt.wantTax)
			}
			if !got.Total.Equal(dec(tt.wantTotal)) {
				t.Errorf("total = %s, want %s", got.Total, tt.wantTotal)
			}
			if !got.Total.Equal(got.Subtotal.Add(got.TaxAmount)) {
				t.Errorf("total %s != subtotal %s + tax %s", got.Total, got.Subtotal, got.TaxAmount)
			}
		})
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	sel := []core.Selection{
		{MenuItemID: 1, Quantity: 3, UnitPrice: dec("8.00")},
		{MenuItemID: 2, Quantity: 1, UnitPrice: dec("12.75")},
	}
	rate := &core.TaxRate{ID: 1, Name: "VAT 16%", Percentage: dec("16")}

	first := core.ComputeTotals(sel, rate)
	second := core.ComputeTotals(sel, rate)

	if !first.Subtotal.Equal(second.Subtotal) || !first.TaxAmount.Equal(second.TaxAmount) || !first.Total.Equal(second.Total) {
		t.Errorf("repeated ComputeTotals differ: %+v vs %+v", first, second)
	}
}
