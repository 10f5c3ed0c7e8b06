package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order statuses.
const (
	PODraft     = "Draft"
	POOrdered   = "Ordered"
	POReceived  = "Received"
	POCancelled = "Cancelled"
)

// Supplier is a purchasing vendor master record.
type Supplier struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// PurchaseOrder is a header whose TotalCost is recomputed from its lines
// inside the same transaction as every line mutation, so the stored total
// can never drift from the line items.
type PurchaseOrder struct {
	ID           int                 `json:"id"`
	SupplierID   int                 `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"` // joined from suppliers
	Status       string              `json:"status"`
	OrderDate    time.Time           `json:"order_date"`
	TotalCost    decimal.Decimal     `json:"total_cost"`
	Lines        []PurchaseOrderLine `json:"lines"`
	CreatedAt    time.Time           `json:"created_at"`
}

// PurchaseOrderLine is one purchased item.
type PurchaseOrderLine struct {
	ID          int             `json:"id"`
	POID        int             `json:"purchase_order_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// LineCost returns Quantity × UnitCost.
func (l PurchaseOrderLine) LineCost() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// PurchaseService manages suppliers and purchase orders.
type PurchaseService interface {
	CreateSupplier(ctx context.Context, name, contactName, email, phone string) (*Supplier, error)
	UpdateSupplier(ctx context.Context, id int, name, contactName, email, phone string) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)

	CreatePurchaseOrder(ctx context.Context, supplierID int, orderDate time.Time) (*PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id int) (*PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, supplierID int) ([]PurchaseOrder, error)
	AddPOLine(ctx context.Context, poID int, description string, quantity, unitCost decimal.Decimal) (*PurchaseOrder, error)
	RemovePOLine(ctx context.Context, poID, lineID int) (*PurchaseOrder, error)
	SetPOStatus(ctx context.Context, poID int, status string) (*PurchaseOrder, error)
}
