package core_test

import (
	"context"
	"errors"
	"testing"

	"desserts-ops/internal/core"
)

func TestCatalogService_DeleteMenuItem_RefusedWhenQuoted(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)
	quotes := core.NewQuoteService(pool)

	_, err := quotes.CreateQuote(ctx, core.QuoteInput{
		ContactID: 1,
		Selections: []core.Selection{
			{MenuItemID: 1, Quantity: 2, UnitPrice: dec("8.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	err = catalog.DeleteMenuItem(ctx, 1)
	var ce *core.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError deleting a quoted item, got %v", err)
	}

	// Deactivation is the supported path and must leave the quote readable.
	if err := catalog.DeactivateMenuItem(ctx, 1); err != nil {
		t.Fatalf("DeactivateMenuItem: %v", err)
	}
	active, err := catalog.ListMenuItems(ctx, true)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	for _, it := range active {
		if it.ID == 1 {
			t.Error("deactivated item still listed as active")
		}
	}

	// Item 2 is unreferenced and deletes cleanly.
	if err := catalog.DeleteMenuItem(ctx, 2); err != nil {
		t.Fatalf("DeleteMenuItem(unreferenced): %v", err)
	}
	if _, err := catalog.GetMenuItem(ctx, 2); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCatalogService_Recipe_ReplaceRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)

	_, err := pool.Exec(ctx, `
		INSERT INTO ingredients (id, name, unit) VALUES
		(1, 'Flour', 'kg'),
		(2, 'Condensed Milk', 'can'),
		(3, 'Cinnamon', 'g');
		SELECT setval('ingredients_id_seq', 3);
	`)
	if err != nil {
		t.Fatalf("seed ingredients: %v", err)
	}

	err = catalog.SetRecipe(ctx, 1, []core.RecipeLine{
		{IngredientID: 1, QuantityNeeded: dec("0.5")},
		{IngredientID: 2, QuantityNeeded: dec("2")},
	})
	if err != nil {
		t.Fatalf("SetRecipe: %v", err)
	}

	// A second call replaces the whole recipe, never appends.
	err = catalog.SetRecipe(ctx, 1, []core.RecipeLine{
		{IngredientID: 3, QuantityNeeded: dec("10")},
	})
	if err != nil {
		t.Fatalf("SetRecipe replace: %v", err)
	}

	lines, err := catalog.GetRecipe(ctx, 1)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if len(lines) != 1 || lines[0].IngredientID != 3 || !lines[0].QuantityNeeded.Equal(dec("10")) {
		t.Errorf("recipe after replace = %+v", lines)
	}
}
