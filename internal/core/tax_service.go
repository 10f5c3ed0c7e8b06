package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type taxService struct {
	pool *pgxpool.Pool
}

// NewTaxService constructs a TaxService backed by PostgreSQL.
func NewTaxService(pool *pgxpool.Pool) TaxService {
	return &taxService{pool: pool}
}

func validateRate(name string, percentage decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "rate_name", Message: "must not be empty"}
	}
	if percentage.IsNegative() {
		return &ValidationError{Field: "rate_percentage", Message: "must not be negative"}
	}
	return nil
}

func (s *taxService) CreateTaxRate(ctx context.Context, name string, percentage decimal.Decimal) (*TaxRate, error) {
	if err := validateRate(name, percentage); err != nil {
		return nil, err
	}

	var r TaxRate
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tax_rates (rate_name, rate_percentage)
		VALUES ($1, $2)
		RETURNING id, rate_name, rate_percentage, is_active, created_at`,
		name, percentage,
	).Scan(&r.ID, &r.Name, &r.Percentage, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create tax rate: %w", err)
	}
	return &r, nil
}

func (s *taxService) UpdateTaxRate(ctx context.Context, id int, name string, percentage decimal.Decimal, isActive bool) (*TaxRate, error) {
	if err := validateRate(name, percentage); err != nil {
		return nil, err
	}

	var r TaxRate
	err := s.pool.QueryRow(ctx, `
		UPDATE tax_rates SET rate_name = $2, rate_percentage = $3, is_active = $4
		WHERE id = $1
		RETURNING id, rate_name, rate_percentage, is_active, created_at`,
		id, name, percentage, isActive,
	).Scan(&r.ID, &r.Name, &r.Percentage, &r.IsActive, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tax rate %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update tax rate: %w", err)
	}
	return &r, nil
}

func (s *taxService) GetTaxRate(ctx context.Context, id int) (*TaxRate, error) {
	var r TaxRate
	err := s.pool.QueryRow(ctx, `
		SELECT id, rate_name, rate_percentage, is_active, created_at
		FROM tax_rates WHERE id = $1`, id,
	).Scan(&r.ID, &r.Name, &r.Percentage, &r.IsActive, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tax rate %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tax rate: %w", err)
	}
	return &r, nil
}

func (s *taxService) ListTaxRates(ctx context.Context, activeOnly bool) ([]TaxRate, error) {
	q := "SELECT id, rate_name, rate_percentage, is_active, created_at FROM tax_rates"
	if activeOnly {
		q += " WHERE is_active = true"
	}
	q += " ORDER BY rate_name"

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax rates: %w", err)
	}
	defer rows.Close()

	var rates []TaxRate
	for rows.Next() {
		var r TaxRate
		if err := rows.Scan(&r.ID, &r.Name, &r.Percentage, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tax rate: %w", err)
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

func (s *taxService) CreateTaxGroup(ctx context.Context, name string, isDefault bool, rateIDs []int) (*TaxGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if isDefault {
		if _, err := tx.Exec(ctx, "UPDATE tax_groups SET is_default = false WHERE is_default"); err != nil {
			return nil, fmt.Errorf("failed to clear default group: %w", err)
		}
	}

	var id int
	if err := tx.QueryRow(ctx,
		"INSERT INTO tax_groups (name, is_default) VALUES ($1, $2) RETURNING id",
		name, isDefault,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to create tax group: %w", err)
	}

	if err := insertGroupMembers(ctx, tx, id, rateIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit tax group: %w", err)
	}
	return s.GetTaxGroup(ctx, id)
}

// UpdateTaxGroup rewrites the membership list wholesale: the settings UI
// edits the whole group at once, so partial membership patches don't exist.
func (s *taxService) UpdateTaxGroup(ctx context.Context, id int, name string, isDefault bool, rateIDs []int) (*TaxGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if isDefault {
		if _, err := tx.Exec(ctx, "UPDATE tax_groups SET is_default = false WHERE is_default AND id <> $1", id); err != nil {
			return nil, fmt.Errorf("failed to clear default group: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, "UPDATE tax_groups SET name = $2, is_default = $3 WHERE id = $1", id, name, isDefault)
	if err != nil {
		return nil, fmt.Errorf("failed to update tax group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("tax group %d: %w", id, ErrNotFound)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM tax_group_items WHERE tax_group_id = $1", id); err != nil {
		return nil, fmt.Errorf("failed to clear group members: %w", err)
	}
	if err := insertGroupMembers(ctx, tx, id, rateIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit tax group: %w", err)
	}
	return s.GetTaxGroup(ctx, id)
}

func insertGroupMembers(ctx context.Context, tx pgx.Tx, groupID int, rateIDs []int) error {
	for priority, rateID := range rateIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO tax_group_items (tax_group_id, tax_rate_id, priority)
			VALUES ($1, $2, $3)`,
			groupID, rateID, priority,
		); err != nil {
			return fmt.Errorf("failed to insert group member rate %d: %w", rateID, err)
		}
	}
	return nil
}

func (s *taxService) DeleteTaxGroup(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM tax_groups WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete tax group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tax group %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *taxService) GetTaxGroup(ctx context.Context, id int) (*TaxGroup, error) {
	var g TaxGroup
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, is_default, created_at FROM tax_groups WHERE id = $1", id,
	).Scan(&g.ID, &g.Name, &g.IsDefault, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tax group %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tax group: %w", err)
	}

	members, err := s.groupMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Members = members
	return &g, nil
}

func (s *taxService) groupMembers(ctx context.Context, groupID int) ([]TaxGroupMember, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.rate_name, r.rate_percentage, r.is_active, r.created_at, gi.priority
		FROM tax_group_items gi
		JOIN tax_rates r ON r.id = gi.tax_rate_id
		WHERE gi.tax_group_id = $1
		ORDER BY gi.priority`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	var members []TaxGroupMember
	for rows.Next() {
		var m TaxGroupMember
		if err := rows.Scan(&m.Rate.ID, &m.Rate.Name, &m.Rate.Percentage,
			&m.Rate.IsActive, &m.Rate.CreatedAt, &m.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *taxService) ListTaxGroups(ctx context.Context) ([]TaxGroup, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, is_default, created_at FROM tax_groups ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query tax groups: %w", err)
	}
	defer rows.Close()

	var groups []TaxGroup
	for rows.Next() {
		var g TaxGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.IsDefault, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tax group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		members, err := s.groupMembers(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Members = members
	}
	return groups, nil
}
