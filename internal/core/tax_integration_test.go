package core_test

import (
	"context"
	"testing"

	"desserts-ops/internal/core"
)

func TestTaxService_GroupMembershipAndDefault(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	taxes := core.NewTaxService(pool)

	iva, err := taxes.CreateTaxRate(ctx, "IVA 8%", dec("8"))
	if err != nil {
		t.Fatalf("CreateTaxRate: %v", err)
	}
	ish, err := taxes.CreateTaxRate(ctx, "ISH 2%", dec("2"))
	if err != nil {
		t.Fatalf("CreateTaxRate: %v", err)
	}

	g, err := taxes.CreateTaxGroup(ctx, "Border Zone", true, []int{iva.ID, ish.ID})
	if err != nil {
		t.Fatalf("CreateTaxGroup: %v", err)
	}
	if !g.EffectivePercentage().Equal(dec("10")) {
		t.Errorf("effective = %s, want 10", g.EffectivePercentage())
	}
	if len(g.Members) != 2 || g.Members[0].Rate.ID != iva.ID || g.Members[0].Priority != 0 {
		t.Errorf("members = %+v", g.Members)
	}

	// Updating replaces membership wholesale.
	g, err = taxes.UpdateTaxGroup(ctx, g.ID, "Border Zone", true, []int{ish.ID})
	if err != nil {
		t.Fatalf("UpdateTaxGroup: %v", err)
	}
	if len(g.Members) != 1 || g.Members[0].Rate.ID != ish.ID {
		t.Errorf("members after replace = %+v", g.Members)
	}

	// A second default demotes the first; the partial unique index allows
	// at most one default row.
	g2, err := taxes.CreateTaxGroup(ctx, "Standard", true, []int{1})
	if err != nil {
		t.Fatalf("CreateTaxGroup(second default): %v", err)
	}
	if !g2.IsDefault {
		t.Error("new group not default")
	}
	old, err := taxes.GetTaxGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetTaxGroup: %v", err)
	}
	if old.IsDefault {
		t.Error("previous default was not demoted")
	}
}

func TestTaxService_RateValidation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	taxes := core.NewTaxService(pool)

	if _, err := taxes.CreateTaxRate(ctx, "", dec("5")); err == nil {
		t.Error("expected error for empty rate name")
	}
	if _, err := taxes.CreateTaxRate(ctx, "Negative", dec("-1")); err == nil {
		t.Error("expected error for negative percentage")
	}
}
