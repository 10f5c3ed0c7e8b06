package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a sellable catalog entry with two price tiers and a house cost.
// ItemCost feeds COGS reporting only; it never appears on a quote.
type MenuItem struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	ItemCost     decimal.Decimal `json:"item_cost"`
	PublicPrice  decimal.Decimal `json:"public_price"`
	PartnerPrice decimal.Decimal `json:"partner_price"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Ingredient is a raw material consumed by menu items, used by the
// inventory-needs forecast.
type Ingredient struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// RecipeLine links a menu item to one ingredient with the quantity consumed
// per unit sold.
type RecipeLine struct {
	MenuItemID     int             `json:"menu_item_id"`
	IngredientID   int             `json:"ingredient_id"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
}

// MenuItemInput carries the editable fields of a menu item.
type MenuItemInput struct {
	Name         string
	Category     string
	Description  string
	ItemCost     decimal.Decimal
	PublicPrice  decimal.Decimal
	PartnerPrice decimal.Decimal
	IsActive     bool
}

// CatalogService manages the menu and recipes.
type CatalogService interface {
	CreateMenuItem(ctx context.Context, in MenuItemInput) (*MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int, in MenuItemInput) (*MenuItem, error)
	// DeactivateMenuItem is the intended retirement path: the item stops
	// appearing in pickers but historical quote lines keep resolving.
	DeactivateMenuItem(ctx context.Context, id int) error
	// DeleteMenuItem hard-deletes an item, refusing with a ConflictError
	// if any quote line references it.
	DeleteMenuItem(ctx context.Context, id int) error
	GetMenuItem(ctx context.Context, id int) (*MenuItem, error)
	// ListMenuItems returns items ordered by category then name.
	// activeOnly limits the result to the picker view.
	ListMenuItems(ctx context.Context, activeOnly bool) ([]MenuItem, error)

	ListIngredients(ctx context.Context) ([]Ingredient, error)
	// SetRecipe replaces the full ingredient list for a menu item.
	SetRecipe(ctx context.Context, menuItemID int, lines []RecipeLine) error
	GetRecipe(ctx context.Context, menuItemID int) ([]RecipeLine, error)
}
