package core_test

import (
	"context"
	"testing"
	"time"

	"desserts-ops/internal/core"
)

func TestPurchaseService_TotalTracksLines(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	purchases := core.NewPurchaseService(pool)

	sup, err := purchases.CreateSupplier(ctx, "Harinas del Norte", "Sra. Ortega", "ventas@harinas.example", "555-0101")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	po, err := purchases.CreatePurchaseOrder(ctx, sup.ID, time.Now())
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	if !po.TotalCost.IsZero() || po.Status != core.PODraft {
		t.Fatalf("new PO = total %s, status %s", po.TotalCost, po.Status)
	}

	po, err = purchases.AddPOLine(ctx, po.ID, "Flour 25kg sack", dec("4"), dec("18.50"))
	if err != nil {
		t.Fatalf("AddPOLine: %v", err)
	}
	po, err = purchases.AddPOLine(ctx, po.ID, "Vanilla extract 1L", dec("2"), dec("30.00"))
	if err != nil {
		t.Fatalf("AddPOLine: %v", err)
	}
	if !po.TotalCost.Equal(dec("134.00")) {
		t.Errorf("total = %s, want 134.00", po.TotalCost)
	}

	po, err = purchases.RemovePOLine(ctx, po.ID, po.Lines[0].ID)
	if err != nil {
		t.Fatalf("RemovePOLine: %v", err)
	}
	if !po.TotalCost.Equal(dec("60.00")) {
		t.Errorf("total after remove = %s, want 60.00", po.TotalCost)
	}

	po, err = purchases.SetPOStatus(ctx, po.ID, core.POOrdered)
	if err != nil {
		t.Fatalf("SetPOStatus: %v", err)
	}
	if po.Status != core.POOrdered {
		t.Errorf("status = %s, want Ordered", po.Status)
	}

	if _, err := purchases.SetPOStatus(ctx, po.ID, "Shipped"); err == nil {
		t.Error("expected error for unknown status")
	}
}
