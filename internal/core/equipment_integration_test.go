package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"desserts-ops/internal/core"
)

func TestEquipmentService_AssignToEvent(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	finance := core.NewFinanceService(pool)
	equipment := core.NewEquipmentService(pool)

	eventDate := time.Now()
	ev, err := finance.CreateEvent(ctx, 1, "Boda García", &eventDate, "Hacienda Real")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	chafing, err := equipment.CreateEquipment(ctx, "Chafing dish", "Serving", 6, "")
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}

	// Reserving more units than the house owns is refused.
	_, err = equipment.AssignToEvent(ctx, ev.ID, chafing.ID, 10)
	var verr *core.ValidationError
	if !errors.As(err, &verr) || verr.Field != "quantity" {
		t.Fatalf("over-assignment error = %v, want quantity validation error", err)
	}

	a, err := equipment.AssignToEvent(ctx, ev.ID, chafing.ID, 4)
	if err != nil {
		t.Fatalf("AssignToEvent: %v", err)
	}
	if a.Quantity != 4 || a.Name != "Chafing dish" {
		t.Errorf("assignment = %+v", a)
	}

	// Re-assigning replaces the reservation instead of stacking a duplicate.
	a, err = equipment.AssignToEvent(ctx, ev.ID, chafing.ID, 2)
	if err != nil {
		t.Fatalf("AssignToEvent (again): %v", err)
	}
	if a.Quantity != 2 {
		t.Errorf("replaced quantity = %d, want 2", a.Quantity)
	}
	list, err := equipment.ListForEvent(ctx, ev.ID)
	if err != nil {
		t.Fatalf("ListForEvent: %v", err)
	}
	if len(list) != 1 || list[0].Quantity != 2 {
		t.Errorf("event equipment = %+v", list)
	}

	// Assigned pieces cannot be deleted.
	err = equipment.DeleteEquipment(ctx, chafing.ID)
	var cerr *core.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("delete of assigned equipment = %v, want conflict error", err)
	}

	if err := equipment.UnassignFromEvent(ctx, ev.ID, chafing.ID); err != nil {
		t.Fatalf("UnassignFromEvent: %v", err)
	}
	if err := equipment.DeleteEquipment(ctx, chafing.ID); err != nil {
		t.Fatalf("DeleteEquipment after unassign: %v", err)
	}
}

func TestEquipmentService_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	equipment := core.NewEquipmentService(pool)

	var verr *core.ValidationError
	if _, err := equipment.CreateEquipment(ctx, "  ", "Serving", 1, ""); !errors.As(err, &verr) || verr.Field != "name" {
		t.Errorf("blank name error = %v", err)
	}
	if _, err := equipment.CreateEquipment(ctx, "Fondue set", "Serving", -1, ""); !errors.As(err, &verr) || verr.Field != "quantity_owned" {
		t.Errorf("negative owned error = %v", err)
	}

	table, err := equipment.CreateEquipment(ctx, "Folding table", "Furniture", 8, "")
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
	if _, err := equipment.AssignToEvent(ctx, 1, table.ID, 0); !errors.As(err, &verr) || verr.Field != "quantity" {
		t.Errorf("zero quantity error = %v", err)
	}

	if err := equipment.UnassignFromEvent(ctx, 1, table.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unassign without reservation = %v, want ErrNotFound", err)
	}
	if _, err := equipment.GetEquipment(ctx, 9999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("missing equipment = %v, want ErrNotFound", err)
	}
}
