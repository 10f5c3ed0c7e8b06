package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"desserts-ops/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// setupTestDB truncates and seeds the dedicated test database.
// Set TEST_DATABASE_URL to run integration tests; they are skipped otherwise
// to protect the live database.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE payments, invoices, quote_items, quotes,
			event_equipment, equipment, events,
			commissions, event_expenses, event_payroll, partners,
			purchase_order_items, purchase_orders, suppliers,
			menu_item_ingredients, ingredients, menu_items,
			tax_group_items, tax_groups, tax_rates, contacts, users
			RESTART IDENTITY CASCADE;

		INSERT INTO contacts (id, full_name, email, status, pipeline_stage, price_tier) VALUES
		(1, 'Mariana Flores', 'mariana@example.com', 'Lead', 'Proposal', 'Partner/Vendor'),
		(2, 'Diego Reyes',    'diego@example.com',   'Lead', 'New',      'Public/Direct');
		SELECT setval('contacts_id_seq', 2);

		INSERT INTO menu_items (id, name, category, item_cost, public_price, partner_price) VALUES
		(1, 'Tres Leches Cake', 'Cakes',    4.00, 10.00, 8.00),
		(2, 'Churro Platter',   'Catering', 2.50,  6.00, 5.00);
		SELECT setval('menu_items_id_seq', 2);

		INSERT INTO tax_rates (id, rate_name, rate_percentage) VALUES
		(1, 'VAT 16%', 16);
		SELECT setval('tax_rates_id_seq', 1);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func intPtr(v int) *int { return &v }

func TestQuoteService_CreateQuote_Atomic(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewQuoteService(pool)

	item := &core.MenuItem{ID: 1, Name: "Tres Leches Cake", PublicPrice: dec("10.00"), PartnerPrice: dec("8.00")}
	sel := core.AddOrIncrementLine(nil, item, core.TierPartner)
	sel = core.SetQuantity(sel, 1, 3)

	q, err := svc.CreateQuote(ctx, core.QuoteInput{
		ContactID:  1,
		QuoteName:  "Wedding tasting",
		Currency:   "USD",
		TaxRateID:  intPtr(1),
		Selections: sel,
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	if !q.Subtotal.Equal(dec("24.00")) {
		t.Errorf("subtotal = %s, want 24.00", q.Subtotal)
	}
	if !q.TaxAmount.Equal(dec("3.84")) {
		t.Errorf("tax = %s, want 3.84", q.TaxAmount)
	}
	if !q.TotalAmount.Equal(dec("27.84")) {
		t.Errorf("total = %s, want 27.84", q.TotalAmount)
	}
	if q.Status != core.QuoteDraft {
		t.Errorf("status = %s, want Draft", q.Status)
	}
	if len(q.Lines) != 1 || q.Lines[0].Quantity != 3 || !q.Lines[0].TotalPrice.Equal(dec("24.00")) {
		t.Errorf("lines = %+v", q.Lines)
	}

	// No headers without lines: the save is one transaction.
	var orphans int
	err = pool.QueryRow(ctx, `
		SELECT count(*) FROM quotes q
		WHERE NOT EXISTS (SELECT 1 FROM quote_items qi WHERE qi.quote_id = q.id)`,
	).Scan(&orphans)
	if err != nil {
		t.Fatalf("orphan check: %v", err)
	}
	if orphans != 0 {
		t.Errorf("found %d orphaned quote headers", orphans)
	}
}

func TestQuoteService_CreateQuote_RejectsEmptySelections(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewQuoteService(pool)
	_, err := svc.CreateQuote(context.Background(), core.QuoteInput{ContactID: 1})
	if _, ok := core.AsValidation(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestQuoteService_SnapshotSurvivesRateEdit(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	quotes := core.NewQuoteService(pool)
	taxes := core.NewTaxService(pool)

	q, err := quotes.CreateQuote(ctx, core.QuoteInput{
		ContactID: 1,
		TaxRateID: intPtr(1),
		Selections: []core.Selection{
			{MenuItemID: 1, Quantity: 3, UnitPrice: dec("8.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	// Doubling the rate must not change what the saved quote shows.
	if _, err := taxes.UpdateTaxRate(ctx, 1, "VAT 32%", dec("32"), true); err != nil {
		t.Fatalf("UpdateTaxRate: %v", err)
	}

	reread, err := quotes.GetQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if !reread.TaxAmount.Equal(dec("3.84")) || !reread.TotalAmount.Equal(dec("27.84")) {
		t.Errorf("stored snapshot changed after rate edit: tax=%s total=%s", reread.TaxAmount, reread.TotalAmount)
	}
}

func TestQuoteService_AcceptWorkflow(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	quotes := core.NewQuoteService(pool)
	finance := core.NewFinanceService(pool)

	ev, err := finance.CreateEvent(ctx, 1, "Flores Wedding", nil, "Hacienda San Miguel")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	q, err := quotes.CreateQuote(ctx, core.QuoteInput{
		ContactID: 1,
		Selections: []core.Selection{
			{MenuItemID: 1, Quantity: 2, UnitPrice: dec("8.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	// Accept straight from Draft is illegal.
	if _, err := quotes.AcceptQuote(ctx, q.ID); err == nil {
		t.Fatal("expected TransitionError accepting a Draft quote")
	} else {
		var te *core.TransitionError
		if !errors.As(err, &te) {
			t.Fatalf("expected TransitionError, got %v", err)
		}
	}

	if _, err := quotes.SendQuote(ctx, q.ID); err != nil {
		t.Fatalf("SendQuote: %v", err)
	}
	accepted, err := quotes.AcceptQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("AcceptQuote: %v", err)
	}
	if accepted.Status != core.QuoteAccepted || accepted.SignedAt == nil {
		t.Errorf("accepted quote = status %s, signed_at %v", accepted.Status, accepted.SignedAt)
	}

	// Cascade: contact promoted, event linked.
	contacts := core.NewContactService(pool)
	c, err := contacts.GetContact(ctx, 1)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if c.Status != "Active Client" || c.PipelineStage != "Won" || c.ConversionDate == nil {
		t.Errorf("contact not promoted: %+v", c)
	}

	linked, err := finance.GetEvent(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if linked.QuoteID == nil || *linked.QuoteID != q.ID {
		t.Errorf("event not linked to quote: %+v", linked)
	}
}
