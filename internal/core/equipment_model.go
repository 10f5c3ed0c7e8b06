package core

import (
	"context"
	"time"
)

// Equipment is a piece of owned event gear (tables, chafing dishes, dessert
// stands). QuantityOwned is the house inventory count.
type Equipment struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	QuantityOwned int       `json:"quantity_owned"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// EquipmentAssignment reserves a quantity of one equipment piece for an
// event.
type EquipmentAssignment struct {
	ID          int    `json:"id"`
	EventID     int    `json:"event_id"`
	EquipmentID int    `json:"equipment_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
}

// EquipmentService manages the gear inventory and its event assignments.
type EquipmentService interface {
	CreateEquipment(ctx context.Context, name, category string, quantityOwned int, notes string) (*Equipment, error)
	UpdateEquipment(ctx context.Context, id int, name, category string, quantityOwned int, notes string) (*Equipment, error)
	DeleteEquipment(ctx context.Context, id int) error
	GetEquipment(ctx context.Context, id int) (*Equipment, error)
	ListEquipment(ctx context.Context) ([]Equipment, error)

	// AssignToEvent upserts the reservation for (eventID, equipmentID);
	// assigning more units than the house owns is refused.
	AssignToEvent(ctx context.Context, eventID, equipmentID, quantity int) (*EquipmentAssignment, error)
	UnassignFromEvent(ctx context.Context, eventID, equipmentID int) error
	ListForEvent(ctx context.Context, eventID int) ([]EquipmentAssignment, error)
}
