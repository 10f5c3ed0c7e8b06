package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type equipmentService struct {
	pool *pgxpool.Pool
}

// NewEquipmentService constructs an EquipmentService backed by PostgreSQL.
func NewEquipmentService(pool *pgxpool.Pool) EquipmentService {
	return &equipmentService{pool: pool}
}

const equipmentColumns = "id, name, category, quantity_owned, notes, created_at"

func scanEquipment(row pgx.Row, e *Equipment) error {
	return row.Scan(&e.ID, &e.Name, &e.Category, &e.QuantityOwned, &e.Notes, &e.CreatedAt)
}

func validateEquipment(name string, quantityOwned int) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if quantityOwned < 0 {
		return &ValidationError{Field: "quantity_owned", Message: "must not be negative"}
	}
	return nil
}

func (s *equipmentService) CreateEquipment(ctx context.Context, name, category string, quantityOwned int, notes string) (*Equipment, error) {
	if err := validateEquipment(name, quantityOwned); err != nil {
		return nil, err
	}

	var e Equipment
	err := scanEquipment(s.pool.QueryRow(ctx, `
		INSERT INTO equipment (name, category, quantity_owned, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING `+equipmentColumns,
		name, category, quantityOwned, notes,
	), &e)
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return &e, nil
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, id int, name, category string, quantityOwned int, notes string) (*Equipment, error) {
	if err := validateEquipment(name, quantityOwned); err != nil {
		return nil, err
	}

	var e Equipment
	err := scanEquipment(s.pool.QueryRow(ctx, `
		UPDATE equipment
		SET name = $2, category = $3, quantity_owned = $4, notes = $5
		WHERE id = $1
		RETURNING `+equipmentColumns,
		id, name, category, quantityOwned, notes,
	), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	return &e, nil
}

// DeleteEquipment refuses while event assignments still reference the piece,
// following the same rule as menu item deletion.
func (s *equipmentService) DeleteEquipment(ctx context.Context, id int) error {
	var refs int
	if err := s.pool.QueryRow(ctx,
		"SELECT count(*) FROM event_equipment WHERE equipment_id = $1", id,
	).Scan(&refs); err != nil {
		return fmt.Errorf("failed to count equipment assignments: %w", err)
	}
	if refs > 0 {
		return &ConflictError{Message: fmt.Sprintf(
			"equipment %d is assigned to %d event(s); unassign it first", id, refs)}
	}

	tag, err := s.pool.Exec(ctx, "DELETE FROM equipment WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("equipment %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int) (*Equipment, error) {
	var e Equipment
	err := scanEquipment(s.pool.QueryRow(ctx,
		"SELECT "+equipmentColumns+" FROM equipment WHERE id = $1", id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return &e, nil
}

func (s *equipmentService) ListEquipment(ctx context.Context) ([]Equipment, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+equipmentColumns+" FROM equipment ORDER BY category, name")
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	var out []Equipment
	for rows.Next() {
		var e Equipment
		if err := scanEquipment(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *equipmentService) AssignToEvent(ctx context.Context, eventID, equipmentID, quantity int) (*EquipmentAssignment, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Message: "must be positive"}
	}

	var owned int
	err := s.pool.QueryRow(ctx,
		"SELECT quantity_owned FROM equipment WHERE id = $1", equipmentID,
	).Scan(&owned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("equipment %d: %w", equipmentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}
	if quantity > owned {
		return nil, &ValidationError{Field: "quantity",
			Message: fmt.Sprintf("only %d unit(s) owned", owned)}
	}

	var a EquipmentAssignment
	err = s.pool.QueryRow(ctx, `
		INSERT INTO event_equipment (event_id, equipment_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, equipment_id) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id, event_id, equipment_id, quantity`,
		eventID, equipmentID, quantity,
	).Scan(&a.ID, &a.EventID, &a.EquipmentID, &a.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to assign equipment: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		"SELECT name FROM equipment WHERE id = $1", equipmentID,
	).Scan(&a.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment name: %w", err)
	}
	return &a, nil
}

func (s *equipmentService) UnassignFromEvent(ctx context.Context, eventID, equipmentID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM event_equipment WHERE event_id = $1 AND equipment_id = $2",
		eventID, equipmentID)
	if err != nil {
		return fmt.Errorf("failed to unassign equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("equipment %d on event %d: %w", equipmentID, eventID, ErrNotFound)
	}
	return nil
}

func (s *equipmentService) ListForEvent(ctx context.Context, eventID int) ([]EquipmentAssignment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ee.id, ee.event_id, ee.equipment_id, e.name, ee.quantity
		FROM event_equipment ee
		JOIN equipment e ON e.id = ee.equipment_id
		WHERE ee.event_id = $1
		ORDER BY e.name`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event equipment: %w", err)
	}
	defer rows.Close()

	var out []EquipmentAssignment
	for rows.Next() {
		var a EquipmentAssignment
		if err := rows.Scan(&a.ID, &a.EventID, &a.EquipmentID, &a.Name, &a.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan event equipment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
