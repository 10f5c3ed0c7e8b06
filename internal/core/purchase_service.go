package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// poStatuses is the accepted purchase order status vocabulary.
var poStatuses = map[string]bool{
	PODraft:     true,
	POOrdered:   true,
	POReceived:  true,
	POCancelled: true,
}

type purchaseService struct {
	pool *pgxpool.Pool
}

// NewPurchaseService constructs a PurchaseService backed by PostgreSQL.
func NewPurchaseService(pool *pgxpool.Pool) PurchaseService {
	return &purchaseService{pool: pool}
}

func (s *purchaseService) CreateSupplier(ctx context.Context, name, contactName, email, phone string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	var sup Supplier
	err := s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_name, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, contact_name, email, phone`,
		name, contactName, email, phone,
	).Scan(&sup.ID, &sup.Name, &sup.ContactName, &sup.Email, &sup.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return &sup, nil
}

func (s *purchaseService) UpdateSupplier(ctx context.Context, id int, name, contactName, email, phone string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	var sup Supplier
	err := s.pool.QueryRow(ctx, `
		UPDATE suppliers SET name = $2, contact_name = $3, email = $4, phone = $5
		WHERE id = $1
		RETURNING id, name, contact_name, email, phone`,
		id, name, contactName, email, phone,
	).Scan(&sup.ID, &sup.Name, &sup.ContactName, &sup.Email, &sup.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return &sup, nil
}

func (s *purchaseService) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, contact_name, email, phone FROM suppliers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		var sup Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.ContactName, &sup.Email, &sup.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		out = append(out, sup)
	}
	return out, rows.Err()
}

func (s *purchaseService) CreatePurchaseOrder(ctx context.Context, supplierID int, orderDate time.Time) (*PurchaseOrder, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		"INSERT INTO purchase_orders (supplier_id, order_date) VALUES ($1, $2) RETURNING id",
		supplierID, orderDate,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}
	return s.GetPurchaseOrder(ctx, id)
}

func (s *purchaseService) GetPurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := s.pool.QueryRow(ctx, `
		SELECT po.id, po.supplier_id, sup.name, po.status, po.order_date, po.total_cost, po.created_at
		FROM purchase_orders po
		JOIN suppliers sup ON sup.id = po.supplier_id
		WHERE po.id = $1`, id,
	).Scan(&po.ID, &po.SupplierID, &po.SupplierName, &po.Status, &po.OrderDate, &po.TotalCost, &po.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, purchase_order_id, description, quantity, unit_cost
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.POID, &l.Description, &l.Quantity, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order line: %w", err)
		}
		po.Lines = append(po.Lines, l)
	}
	return &po, rows.Err()
}

func (s *purchaseService) ListPurchaseOrders(ctx context.Context, supplierID int) ([]PurchaseOrder, error) {
	q := `
		SELECT po.id, po.supplier_id, sup.name, po.status, po.order_date, po.total_cost, po.created_at
		FROM purchase_orders po
		JOIN suppliers sup ON sup.id = po.supplier_id`
	var args []any
	if supplierID != 0 {
		q += " WHERE po.supplier_id = $1"
		args = append(args, supplierID)
	}
	q += " ORDER BY po.order_date DESC, po.id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase orders: %w", err)
	}
	defer rows.Close()

	var out []PurchaseOrder
	for rows.Next() {
		var po PurchaseOrder
		if err := rows.Scan(&po.ID, &po.SupplierID, &po.SupplierName, &po.Status, &po.OrderDate, &po.TotalCost, &po.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order: %w", err)
		}
		out = append(out, po)
	}
	return out, rows.Err()
}

// refreshPOTotal recomputes total_cost from the lines inside tx. The old
// system recomputed this client-side after the fact and could leave a stale
// total behind on error.
func refreshPOTotal(ctx context.Context, tx pgx.Tx, poID int) error {
	_, err := tx.Exec(ctx, `
		UPDATE purchase_orders
		SET total_cost = COALESCE((
			SELECT SUM(quantity * unit_cost)
			FROM purchase_order_items
			WHERE purchase_order_id = $1
		), 0)
		WHERE id = $1`, poID)
	if err != nil {
		return fmt.Errorf("failed to refresh purchase order total: %w", err)
	}
	return nil
}

func (s *purchaseService) AddPOLine(ctx context.Context, poID int, description string, quantity, unitCost decimal.Decimal) (*PurchaseOrder, error) {
	if strings.TrimSpace(description) == "" {
		return nil, &ValidationError{Field: "description", Message: "must not be empty"}
	}
	if quantity.Sign() <= 0 {
		return nil, &ValidationError{Field: "quantity", Message: "must be positive"}
	}
	if unitCost.IsNegative() {
		return nil, &ValidationError{Field: "unit_cost", Message: "must not be negative"}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO purchase_order_items (purchase_order_id, description, quantity, unit_cost)
		VALUES ($1, $2, $3, $4)`,
		poID, description, quantity, unitCost,
	); err != nil {
		return nil, fmt.Errorf("failed to insert purchase order line: %w", err)
	}
	if err := refreshPOTotal(ctx, tx, poID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase order line: %w", err)
	}
	return s.GetPurchaseOrder(ctx, poID)
}

func (s *purchaseService) RemovePOLine(ctx context.Context, poID, lineID int) (*PurchaseOrder, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"DELETE FROM purchase_order_items WHERE id = $1 AND purchase_order_id = $2",
		lineID, poID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete purchase order line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("purchase order line %d: %w", lineID, ErrNotFound)
	}
	if err := refreshPOTotal(ctx, tx, poID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit line removal: %w", err)
	}
	return s.GetPurchaseOrder(ctx, poID)
}

func (s *purchaseService) SetPOStatus(ctx context.Context, poID int, status string) (*PurchaseOrder, error) {
	if !poStatuses[status] {
		return nil, &ValidationError{Field: "status", Message: "unknown status " + status}
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE purchase_orders SET status = $2 WHERE id = $1", poID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("purchase order %d: %w", poID, ErrNotFound)
	}
	return s.GetPurchaseOrder(ctx, poID)
}
