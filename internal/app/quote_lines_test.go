package app

import (
	"errors"
	"testing"

	"desserts-ops/internal/core"
)

func TestValidateQuoteLines(t *testing.T) {
	tests := []struct {
		name      string
		lines     []QuoteLineRequest
		wantField string // empty means valid
	}{
		{
			name:  "valid basket",
			lines: []QuoteLineRequest{{MenuItemID: 1, Quantity: 3}, {MenuItemID: 2, Quantity: 1}},
		},
		{
			name:  "empty basket passes here, rejected downstream",
			lines: nil,
		},
		{
			name:      "zero quantity",
			lines:     []QuoteLineRequest{{MenuItemID: 1, Quantity: 0}},
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			lines:     []QuoteLineRequest{{MenuItemID: 1, Quantity: 3}, {MenuItemID: 2, Quantity: -2}},
			wantField: "quantity",
		},
		{
			name:      "duplicate menu item",
			lines:     []QuoteLineRequest{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 1, Quantity: 5}},
			wantField: "menu_item_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuoteLines(tt.lines)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("validateQuoteLines() = %v, want nil", err)
				}
				return
			}
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("validateQuoteLines() = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

// A zeroed-out line must be refused at the request boundary, not coerced by
// the selection helpers into a quantity-1 line that would bill the client.
func TestValidateQuoteLines_ZeroNeverReachesSelections(t *testing.T) {
	lines := []QuoteLineRequest{{MenuItemID: 1, Quantity: 0}}
	if err := validateQuoteLines(lines); err == nil {
		item := &core.MenuItem{ID: 1, Name: "Tres Leches Cake"}
		selections := core.AddOrIncrementLine(nil, item, core.TierPublic)
		selections = core.SetQuantity(selections, item.ID, 0)
		t.Fatalf("zero quantity accepted; selection helpers would persist quantity %d", selections[0].Quantity)
	}
}
