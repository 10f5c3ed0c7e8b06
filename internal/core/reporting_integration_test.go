package core_test

import (
	"context"
	"testing"
	"time"

	"desserts-ops/internal/core"
)

func TestReportingService_EventPnL(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	quotes := core.NewQuoteService(pool)
	finance := core.NewFinanceService(pool)
	reporting := core.NewReportingService(pool)

	ev, err := finance.CreateEvent(ctx, 1, "Quinceañera", nil, "Salón Azul")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// Revenue 100.00 (10 × 10.00), COGS 40.00 (10 × 4.00 item cost).
	acceptedQuote(t, quotes)

	partner, err := finance.CreatePartner(ctx, "Eventos del Valle", "valle@example.com")
	if err != nil {
		t.Fatalf("CreatePartner: %v", err)
	}
	if _, err := finance.AddCommission(ctx, ev.ID, partner.ID, "Referral", dec("10.00")); err != nil {
		t.Fatalf("AddCommission: %v", err)
	}
	if _, err := finance.AddExpense(ctx, ev.ID, "Venue deposit", dec("15.00"), time.Now()); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if _, err := finance.AddPayroll(ctx, ev.ID, "Lupita", "Server", dec("12.00"), time.Now()); err != nil {
		t.Fatalf("AddPayroll: %v", err)
	}

	pnl, err := reporting.GetEventPnL(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetEventPnL: %v", err)
	}
	if !pnl.Revenue.Equal(dec("100.00")) {
		t.Errorf("revenue = %s, want 100.00", pnl.Revenue)
	}
	if !pnl.COGS.Equal(dec("40.00")) {
		t.Errorf("cogs = %s, want 40.00", pnl.COGS)
	}
	if !pnl.Commissions.Equal(dec("10.00")) || !pnl.Expenses.Equal(dec("15.00")) || !pnl.Payroll.Equal(dec("12.00")) {
		t.Errorf("costs = commissions %s, expenses %s, payroll %s", pnl.Commissions, pnl.Expenses, pnl.Payroll)
	}
	if !pnl.NetProfit.Equal(dec("23.00")) {
		t.Errorf("net = %s, want 23.00", pnl.NetProfit)
	}
}

func TestReportingService_TaxReportAndRevenue(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	quotes := core.NewQuoteService(pool)
	reporting := core.NewReportingService(pool)

	// One accepted quote with VAT, one declined (must not count).
	acceptedQuote(t, quotes)

	declined, err := quotes.CreateQuote(ctx, core.QuoteInput{
		ContactID: 2,
		TaxRateID: intPtr(1),
		Selections: []core.Selection{
			{MenuItemID: 2, Quantity: 5, UnitPrice: dec("6.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if _, err := quotes.SendQuote(ctx, declined.ID); err != nil {
		t.Fatalf("SendQuote: %v", err)
	}
	if _, err := quotes.DeclineQuote(ctx, declined.ID); err != nil {
		t.Fatalf("DeclineQuote: %v", err)
	}

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)

	report, err := reporting.GetTaxReport(ctx, from, to)
	if err != nil {
		t.Fatalf("GetTaxReport: %v", err)
	}
	if len(report.Lines) != 1 {
		t.Fatalf("report lines = %d, want 1", len(report.Lines))
	}
	line := report.Lines[0]
	if !line.TaxableAmount.Equal(dec("100.00")) || !line.TaxCollected.Equal(dec("16.00")) {
		t.Errorf("line = taxable %s, collected %s", line.TaxableAmount, line.TaxCollected)
	}
	if !report.TotalTaxCollected.Equal(dec("16.00")) {
		t.Errorf("total collected = %s, want 16.00", report.TotalTaxCollected)
	}

	booked, err := reporting.GetServicesBooked(ctx, from, to)
	if err != nil {
		t.Fatalf("GetServicesBooked: %v", err)
	}
	if len(booked) != 1 || booked[0].MenuItemID != 1 || booked[0].Quantity != 10 {
		t.Fatalf("booked = %+v", booked)
	}
	if !booked[0].Share.Equal(dec("100")) {
		t.Errorf("share = %s, want 100", booked[0].Share)
	}

	rev, err := reporting.GetRevenueByCurrency(ctx, from, to)
	if err != nil {
		t.Fatalf("GetRevenueByCurrency: %v", err)
	}
	if len(rev) != 1 || rev[0].Currency != "USD" || !rev[0].Revenue.Equal(dec("116.00")) || rev[0].Quotes != 1 {
		t.Errorf("revenue by currency = %+v", rev)
	}
}

func TestReportingService_InventoryNeeds(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	catalog := core.NewCatalogService(pool)
	quotes := core.NewQuoteService(pool)
	reporting := core.NewReportingService(pool)

	_, err := pool.Exec(ctx, `
		INSERT INTO ingredients (id, name, unit) VALUES
		(1, 'Flour', 'kg'),
		(2, 'Condensed Milk', 'can');
		SELECT setval('ingredients_id_seq', 2);
	`)
	if err != nil {
		t.Fatalf("seed ingredients: %v", err)
	}
	err = catalog.SetRecipe(ctx, 1, []core.RecipeLine{
		{IngredientID: 1, QuantityNeeded: dec("0.5")},
		{IngredientID: 2, QuantityNeeded: dec("2")},
	})
	if err != nil {
		t.Fatalf("SetRecipe: %v", err)
	}

	acceptedQuote(t, quotes) // 10 units of item 1

	needs, err := reporting.GetInventoryNeeds(ctx, time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetInventoryNeeds: %v", err)
	}
	if len(needs) != 2 {
		t.Fatalf("needs = %+v", needs)
	}
	byName := map[string]core.InventoryNeed{}
	for _, n := range needs {
		byName[n.Name] = n
	}
	if !byName["Flour"].Quantity.Equal(dec("5")) {
		t.Errorf("flour = %s, want 5", byName["Flour"].Quantity)
	}
	if !byName["Condensed Milk"].Quantity.Equal(dec("20")) {
		t.Errorf("milk = %s, want 20", byName["Condensed Milk"].Quantity)
	}
}

func TestReportingService_CRMReports(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	quotes := core.NewQuoteService(pool)
	reporting := core.NewReportingService(pool)

	_, err := pool.Exec(ctx, `
		INSERT INTO contacts (full_name, email, status, pipeline_stage, lead_source, price_tier) VALUES
		('Ana López',     'ana@example.com',   'Lead', 'Contacted', 'Instagram', 'Public/Direct'),
		('Luis Cruz',     'luis@example.com',  'Lead', 'Won',       'Instagram', 'Public/Direct'),
		('Sofía Mendoza', 'sofia@example.com', 'Lead', 'Lost',      'Referral',  'Public/Direct');
	`)
	if err != nil {
		t.Fatalf("seed contacts: %v", err)
	}

	// Seeded contacts 1 and 2 have no lead source and land in "Unknown".
	leads, err := reporting.GetLeadsBySource(ctx)
	if err != nil {
		t.Fatalf("GetLeadsBySource: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("leads = %+v", leads)
	}
	if leads[0].Source != "Instagram" || leads[0].Contacts != 2 || !leads[0].Share.Equal(dec("40")) {
		t.Errorf("leads[0] = %+v", leads[0])
	}
	if leads[1].Source != "Unknown" || leads[1].Contacts != 2 {
		t.Errorf("leads[1] = %+v", leads[1])
	}
	if leads[2].Source != "Referral" || leads[2].Contacts != 1 || !leads[2].Share.Equal(dec("20")) {
		t.Errorf("leads[2] = %+v", leads[2])
	}

	// Funnel must come back in stage order, not alphabetical.
	funnel, err := reporting.GetPipelineFunnel(ctx)
	if err != nil {
		t.Fatalf("GetPipelineFunnel: %v", err)
	}
	wantStages := []string{"New", "Contacted", "Proposal", "Won", "Lost"}
	if len(funnel) != len(wantStages) {
		t.Fatalf("funnel = %+v", funnel)
	}
	for i, stage := range wantStages {
		if funnel[i].Stage != stage || funnel[i].Contacts != 1 {
			t.Errorf("funnel[%d] = %+v, want stage %s with 1 contact", i, funnel[i], stage)
		}
	}

	// Contact 1 books twice, contact 2 once: one returning client out of two.
	acceptedQuote(t, quotes)
	acceptedQuote(t, quotes)
	q, err := quotes.CreateQuote(ctx, core.QuoteInput{
		ContactID: 2,
		Selections: []core.Selection{
			{MenuItemID: 2, Quantity: 5, UnitPrice: dec("6.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if _, err := quotes.SendQuote(ctx, q.ID); err != nil {
		t.Fatalf("SendQuote: %v", err)
	}
	if _, err := quotes.AcceptQuote(ctx, q.ID); err != nil {
		t.Fatalf("AcceptQuote: %v", err)
	}

	ret, err := reporting.GetClientRetention(ctx)
	if err != nil {
		t.Fatalf("GetClientRetention: %v", err)
	}
	if ret.TotalClients != 2 || ret.ReturningClients != 1 {
		t.Errorf("retention = %+v", ret)
	}
	if !ret.RetentionRate.Equal(dec("50.00")) {
		t.Errorf("retention rate = %s, want 50.00", ret.RetentionRate)
	}
}

func TestReportingService_StaffAndSupplierPerformance(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	finance := core.NewFinanceService(pool)
	purchases := core.NewPurchaseService(pool)
	reporting := core.NewReportingService(pool)

	ev, err := finance.CreateEvent(ctx, 1, "Posada corporativa", nil, "Terraza Norte")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := finance.AddPayroll(ctx, ev.ID, "Lupita", "Server", dec("12.00"), time.Now()); err != nil {
		t.Fatalf("AddPayroll: %v", err)
	}
	if _, err := finance.AddPayroll(ctx, ev.ID, "Lupita", "Setup", dec("8.00"), time.Now()); err != nil {
		t.Fatalf("AddPayroll: %v", err)
	}
	if _, err := finance.AddPayroll(ctx, ev.ID, "Memo", "Driver", dec("15.00"), time.Now()); err != nil {
		t.Fatalf("AddPayroll: %v", err)
	}

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)

	staff, err := reporting.GetStaffAssignments(ctx, from, to)
	if err != nil {
		t.Fatalf("GetStaffAssignments: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("staff = %+v", staff)
	}
	if staff[0].StaffName != "Lupita" || staff[0].Events != 1 || staff[0].Entries != 2 || !staff[0].TotalPaid.Equal(dec("20.00")) {
		t.Errorf("staff[0] = %+v", staff[0])
	}
	if staff[1].StaffName != "Memo" || staff[1].Entries != 1 || !staff[1].TotalPaid.Equal(dec("15.00")) {
		t.Errorf("staff[1] = %+v", staff[1])
	}

	harinas, err := purchases.CreateSupplier(ctx, "Harinas del Norte", "", "", "")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	lacteos, err := purchases.CreateSupplier(ctx, "Lácteos La Villa", "", "", "")
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}

	po1, err := purchases.CreatePurchaseOrder(ctx, harinas.ID, time.Now())
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	if _, err := purchases.AddPOLine(ctx, po1.ID, "Flour 25kg sack", dec("4"), dec("18.50")); err != nil {
		t.Fatalf("AddPOLine: %v", err)
	}
	if _, err := purchases.SetPOStatus(ctx, po1.ID, core.POReceived); err != nil {
		t.Fatalf("SetPOStatus: %v", err)
	}
	po2, err := purchases.CreatePurchaseOrder(ctx, harinas.ID, time.Now())
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	if _, err := purchases.AddPOLine(ctx, po2.ID, "Sugar 10kg", dec("2"), dec("12.00")); err != nil {
		t.Fatalf("AddPOLine: %v", err)
	}
	po3, err := purchases.CreatePurchaseOrder(ctx, lacteos.ID, time.Now())
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	if _, err := purchases.SetPOStatus(ctx, po3.ID, core.POCancelled); err != nil {
		t.Fatalf("SetPOStatus: %v", err)
	}

	perf, err := reporting.GetSupplierPerformance(ctx, from, to)
	if err != nil {
		t.Fatalf("GetSupplierPerformance: %v", err)
	}
	if len(perf) != 2 {
		t.Fatalf("performance = %+v", perf)
	}
	if perf[0].Name != "Harinas del Norte" || perf[0].Orders != 2 || perf[0].Received != 1 || perf[0].Cancelled != 0 {
		t.Errorf("perf[0] = %+v", perf[0])
	}
	if !perf[0].TotalSpend.Equal(dec("98.00")) {
		t.Errorf("perf[0] spend = %s, want 98.00", perf[0].TotalSpend)
	}
	if perf[1].Name != "Lácteos La Villa" || perf[1].Orders != 1 || perf[1].Cancelled != 1 || !perf[1].TotalSpend.IsZero() {
		t.Errorf("perf[1] = %+v", perf[1])
	}
}

func TestReportingService_EquipmentUsage(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	finance := core.NewFinanceService(pool)
	equipment := core.NewEquipmentService(pool)
	reporting := core.NewReportingService(pool)

	thisWeek := time.Now()
	lastMonth := time.Now().AddDate(0, -1, 0)

	ev1, err := finance.CreateEvent(ctx, 1, "Boda García", &thisWeek, "Hacienda Real")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	ev2, err := finance.CreateEvent(ctx, 2, "Bautizo Reyes", &thisWeek, "Salón Azul")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	past, err := finance.CreateEvent(ctx, 1, "Posada vieja", &lastMonth, "Terraza Norte")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	chafing, err := equipment.CreateEquipment(ctx, "Chafing dish", "Serving", 10, "")
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
	fountain, err := equipment.CreateEquipment(ctx, "Chocolate fountain", "Display", 2, "")
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}

	for _, assign := range []struct{ event, piece, qty int }{
		{ev1.ID, chafing.ID, 4},
		{ev2.ID, chafing.ID, 3},
		{ev1.ID, fountain.ID, 1},
		{past.ID, chafing.ID, 6}, // outside the window, must not count
	} {
		if _, err := equipment.AssignToEvent(ctx, assign.event, assign.piece, assign.qty); err != nil {
			t.Fatalf("AssignToEvent: %v", err)
		}
	}

	usage, err := reporting.GetEquipmentUsage(ctx, time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetEquipmentUsage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage = %+v", usage)
	}
	if usage[0].Name != "Chafing dish" || usage[0].Events != 2 || usage[0].UnitsAssigned != 7 {
		t.Errorf("usage[0] = %+v", usage[0])
	}
	if usage[1].Name != "Chocolate fountain" || usage[1].Events != 1 || usage[1].UnitsAssigned != 1 {
		t.Errorf("usage[1] = %+v", usage[1])
	}
}
