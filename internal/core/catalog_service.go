package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogService struct {
	pool *pgxpool.Pool
}

// NewCatalogService constructs a CatalogService backed by PostgreSQL.
func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

func validateMenuItemInput(in *MenuItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if in.ItemCost.IsNegative() {
		return &ValidationError{Field: "item_cost", Message: "must not be negative"}
	}
	if in.PublicPrice.IsNegative() {
		return &ValidationError{Field: "public_price", Message: "must not be negative"}
	}
	if in.PartnerPrice.IsNegative() {
		return &ValidationError{Field: "partner_price", Message: "must not be negative"}
	}
	return nil
}

const menuItemColumns = "id, name, category, description, item_cost, public_price, partner_price, is_active, created_at"

func scanMenuItem(row pgx.Row, m *MenuItem) error {
	return row.Scan(&m.ID, &m.Name, &m.Category, &m.Description,
		&m.ItemCost, &m.PublicPrice, &m.PartnerPrice, &m.IsActive, &m.CreatedAt)
}

func (s *catalogService) CreateMenuItem(ctx context.Context, in MenuItemInput) (*MenuItem, error) {
	if err := validateMenuItemInput(&in); err != nil {
		return nil, err
	}

	var m MenuItem
	err := scanMenuItem(s.pool.QueryRow(ctx, `
		INSERT INTO menu_items (name, category, description, item_cost, public_price, partner_price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+menuItemColumns,
		in.Name, in.Category, in.Description, in.ItemCost, in.PublicPrice, in.PartnerPrice, in.IsActive,
	), &m)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &m, nil
}

func (s *catalogService) UpdateMenuItem(ctx context.Context, id int, in MenuItemInput) (*MenuItem, error) {
	if err := validateMenuItemInput(&in); err != nil {
		return nil, err
	}

	var m MenuItem
	err := scanMenuItem(s.pool.QueryRow(ctx, `
		UPDATE menu_items
		SET name = $2, category = $3, description = $4, item_cost = $5,
		    public_price = $6, partner_price = $7, is_active = $8
		WHERE id = $1
		RETURNING `+menuItemColumns,
		id, in.Name, in.Category, in.Description, in.ItemCost, in.PublicPrice, in.PartnerPrice, in.IsActive,
	), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return &m, nil
}

func (s *catalogService) DeactivateMenuItem(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "UPDATE menu_items SET is_active = false WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to deactivate menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteMenuItem refuses to break the display join for historical quotes:
// a referenced item can only be deactivated, never removed.
func (s *catalogService) DeleteMenuItem(ctx context.Context, id int) error {
	var refs int
	if err := s.pool.QueryRow(ctx,
		"SELECT count(*) FROM quote_items WHERE menu_item_id = $1", id,
	).Scan(&refs); err != nil {
		return fmt.Errorf("failed to count quote references: %w", err)
	}
	if refs > 0 {
		return &ConflictError{Message: fmt.Sprintf(
			"menu item %d is referenced by %d quote line(s); deactivate it instead", id, refs)}
	}

	tag, err := s.pool.Exec(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *catalogService) GetMenuItem(ctx context.Context, id int) (*MenuItem, error) {
	var m MenuItem
	err := scanMenuItem(s.pool.QueryRow(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE id = $1", id), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &m, nil
}

func (s *catalogService) ListMenuItems(ctx context.Context, activeOnly bool) ([]MenuItem, error) {
	q := "SELECT " + menuItemColumns + " FROM menu_items"
	if activeOnly {
		q += " WHERE is_active = true"
	}
	q += " ORDER BY category, name"

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := scanMenuItem(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (s *catalogService) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, unit FROM ingredients ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// SetRecipe uses the same delete-all-then-reinsert pattern as tax group
// membership, inside one transaction.
func (s *catalogService) SetRecipe(ctx context.Context, menuItemID int, lines []RecipeLine) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM menu_item_ingredients WHERE menu_item_id = $1", menuItemID); err != nil {
		return fmt.Errorf("failed to clear recipe: %w", err)
	}
	for _, l := range lines {
		if l.QuantityNeeded.Sign() <= 0 {
			return &ValidationError{Field: "quantity_needed", Message: "must be positive"}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_item_ingredients (menu_item_id, ingredient_id, quantity_needed)
			VALUES ($1, $2, $3)`,
			menuItemID, l.IngredientID, l.QuantityNeeded,
		); err != nil {
			return fmt.Errorf("failed to insert recipe line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}
	return nil
}

func (s *catalogService) GetRecipe(ctx context.Context, menuItemID int) ([]RecipeLine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT menu_item_id, ingredient_id, quantity_needed
		FROM menu_item_ingredients
		WHERE menu_item_id = $1
		ORDER BY ingredient_id`, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}
	defer rows.Close()

	var out []RecipeLine
	for rows.Next() {
		var l RecipeLine
		if err := rows.Scan(&l.MenuItemID, &l.IngredientID, &l.QuantityNeeded); err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
