package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	pool *pgxpool.Pool
}

// NewReportingService constructs a ReportingService backed by the given pool.
func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

// ── Event P&L ─────────────────────────────────────────────────────────────────

// GetEventPnL derives the event's profitability. Revenue is the linked
// quote's stored subtotal (tax collected is not income). COGS uses the
// catalog's current item cost, which is the only live figure in any report:
// house costs have no historical snapshot.
func (s *reportingService) GetEventPnL(ctx context.Context, eventID int) (*EventPnL, error) {
	var (
		pnl     EventPnL
		quoteID *int
	)
	pnl.EventID = eventID
	err := s.pool.QueryRow(ctx,
		"SELECT event_name, quote_id FROM events WHERE id = $1", eventID,
	).Scan(&pnl.EventName, &quoteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("event %d: %w", eventID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	if quoteID != nil {
		err = s.pool.QueryRow(ctx,
			"SELECT subtotal FROM quotes WHERE id = $1", *quoteID,
		).Scan(&pnl.Revenue)
		if err != nil {
			return nil, fmt.Errorf("failed to load quote revenue: %w", err)
		}

		err = s.pool.QueryRow(ctx, `
			SELECT COALESCE(SUM(qi.quantity * m.item_cost), 0)
			FROM quote_items qi
			JOIN menu_items m ON m.id = qi.menu_item_id
			WHERE qi.quote_id = $1`, *quoteID,
		).Scan(&pnl.COGS)
		if err != nil {
			return nil, fmt.Errorf("failed to compute COGS: %w", err)
		}
	}

	sums := []struct {
		query string
		dest  *decimal.Decimal
	}{
		{"SELECT COALESCE(SUM(amount), 0) FROM event_expenses WHERE event_id = $1", &pnl.Expenses},
		{"SELECT COALESCE(SUM(amount), 0) FROM commissions WHERE event_id = $1", &pnl.Commissions},
		{"SELECT COALESCE(SUM(amount), 0) FROM event_payroll WHERE event_id = $1", &pnl.Payroll},
	}
	for _, q := range sums {
		if err := s.pool.QueryRow(ctx, q.query, eventID).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("failed to sum event costs: %w", err)
		}
	}

	pnl.NetProfit = pnl.Revenue.Sub(pnl.COGS).Sub(pnl.Expenses).Sub(pnl.Commissions).Sub(pnl.Payroll)
	return &pnl, nil
}

// ── Tax report ────────────────────────────────────────────────────────────────

type taxableLine struct {
	rateID int
	amount decimal.Decimal
}

// GetTaxReport aggregates taxable volume and tax collected per rate over
// accepted quotes in the period. Each line's tax is re-derived from the
// rate percentage, which matches the stored quote-level tax because every
// quote carries exactly one flat rate.
func (s *reportingService) GetTaxReport(ctx context.Context, from, to time.Time) (*TaxReport, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT q.tax_rate_id, qi.total_price
		FROM quote_items qi
		JOIN quotes q ON q.id = qi.quote_id
		WHERE q.status = 'Accepted'
		  AND q.tax_rate_id IS NOT NULL
		  AND q.quote_date >= $1 AND q.quote_date <= $2`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxable lines: %w", err)
	}
	defer rows.Close()

	var lines []taxableLine
	for rows.Next() {
		var l taxableLine
		if err := rows.Scan(&l.rateID, &l.amount); err != nil {
			return nil, fmt.Errorf("failed to scan taxable line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	taxable := SumBy(lines, func(l taxableLine) int { return l.rateID }, func(l taxableLine) decimal.Decimal { return l.amount })

	report := &TaxReport{From: from, To: to}
	for rateID, amount := range taxable {
		var line TaxReportLine
		line.RateID = rateID
		line.TaxableAmount = amount
		err := s.pool.QueryRow(ctx,
			"SELECT rate_name, rate_percentage FROM tax_rates WHERE id = $1", rateID,
		).Scan(&line.RateName, &line.Percentage)
		if err != nil {
			return nil, fmt.Errorf("failed to load tax rate %d: %w", rateID, err)
		}

		groupRows, err := s.pool.Query(ctx, `
			SELECT g.name
			FROM tax_group_items gi
			JOIN tax_groups g ON g.id = gi.tax_group_id
			WHERE gi.tax_rate_id = $1
			ORDER BY g.name`, rateID)
		if err != nil {
			return nil, fmt.Errorf("failed to load rate groups: %w", err)
		}
		for groupRows.Next() {
			var name string
			if err := groupRows.Scan(&name); err != nil {
				groupRows.Close()
				return nil, fmt.Errorf("failed to scan group name: %w", err)
			}
			line.GroupNames = append(line.GroupNames, name)
		}
		groupRows.Close()
		if err := groupRows.Err(); err != nil {
			return nil, err
		}

		line.TaxCollected = amount.Mul(line.Percentage).Div(decimal.NewFromInt(100))
		report.TotalTaxCollected = report.TotalTaxCollected.Add(line.TaxCollected)
		report.Lines = append(report.Lines, line)
	}

	sort.Slice(report.Lines, func(i, j int) bool { return report.Lines[i].RateName < report.Lines[j].RateName })
	return report, nil
}

// ── Inventory needs ───────────────────────────────────────────────────────────

func (s *reportingService) GetInventoryNeeds(ctx context.Context, from, to time.Time) ([]InventoryNeed, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ing.id, ing.name, ing.unit, SUM(mi.quantity_needed * qi.quantity)
		FROM quote_items qi
		JOIN quotes q ON q.id = qi.quote_id
		JOIN menu_item_ingredients mi ON mi.menu_item_id = qi.menu_item_id
		JOIN ingredients ing ON ing.id = mi.ingredient_id
		WHERE q.status = 'Accepted'
		  AND q.quote_date >= $1 AND q.quote_date <= $2
		GROUP BY ing.id, ing.name, ing.unit
		ORDER BY ing.name`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory needs: %w", err)
	}
	defer rows.Close()

	var needs []InventoryNeed
	for rows.Next() {
		var n InventoryNeed
		if err := rows.Scan(&n.IngredientID, &n.Name, &n.Unit, &n.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan inventory need: %w", err)
		}
		needs = append(needs, n)
	}
	return needs, rows.Err()
}

// ── Services booked ───────────────────────────────────────────────────────────

type bookedLine struct {
	menuItemID int
	name       string
	quantity   int64
	revenue    decimal.Decimal
}

func (s *reportingService) GetServicesBooked(ctx context.Context, from, to time.Time) ([]ServiceBooked, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT qi.menu_item_id, COALESCE(m.name, ''), qi.quantity, qi.total_price
		FROM quote_items qi
		JOIN quotes q ON q.id = qi.quote_id
		LEFT JOIN menu_items m ON m.id = qi.menu_item_id
		WHERE q.status = 'Accepted'
		  AND q.quote_date >= $1 AND q.quote_date <= $2`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query booked services: %w", err)
	}
	defer rows.Close()

	var lines []bookedLine
	for rows.Next() {
		var l bookedLine
		if err := rows.Scan(&l.menuItemID, &l.name, &l.quantity, &l.revenue); err != nil {
			return nil, fmt.Errorf("failed to scan booked service: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	revenue := SumBy(lines, func(l bookedLine) int { return l.menuItemID }, func(l bookedLine) decimal.Decimal { return l.revenue })
	shares := ShareOfTotal(revenue)

	byItem := make(map[int]*ServiceBooked, len(revenue))
	for _, l := range lines {
		sb, ok := byItem[l.menuItemID]
		if !ok {
			sb = &ServiceBooked{
				MenuItemID: l.menuItemID,
				Name:       l.name,
				Revenue:    revenue[l.menuItemID],
				Share:      shares[l.menuItemID],
			}
			byItem[l.menuItemID] = sb
		}
		sb.Quantity += l.quantity
	}

	out := make([]ServiceBooked, 0, len(byItem))
	for _, sb := range byItem {
		out = append(out, *sb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	return out, nil
}

// ── Unpaid invoices ───────────────────────────────────────────────────────────

func (s *reportingService) GetUnpaidInvoices(ctx context.Context) ([]Invoice, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE amount_paid < total_amount ORDER BY due_date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query unpaid invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// ── Commission totals ─────────────────────────────────────────────────────────

func (s *reportingService) GetCommissionTotals(ctx context.Context, from, to time.Time) ([]PartnerCommissionTotal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.name, SUM(c.amount)
		FROM commissions c
		JOIN partners p ON p.id = c.partner_id
		WHERE c.created_at >= $1 AND c.created_at <= $2
		GROUP BY p.id, p.name
		ORDER BY SUM(c.amount) DESC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query commission totals: %w", err)
	}
	defer rows.Close()

	var out []PartnerCommissionTotal
	for rows.Next() {
		var t PartnerCommissionTotal
		if err := rows.Scan(&t.PartnerID, &t.PartnerName, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan commission total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ── CRM reports ───────────────────────────────────────────────────────────────

// GetLeadsBySource buckets all contacts by lead source. Blank sources are
// reported under "Unknown".
func (s *reportingService) GetLeadsBySource(ctx context.Context) ([]LeadSourceCount, error) {
	rows, err := s.pool.Query(ctx, "SELECT lead_source FROM contacts")
	if err != nil {
		return nil, fmt.Errorf("failed to query lead sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, fmt.Errorf("failed to scan lead source: %w", err)
		}
		if src == "" {
			src = "Unknown"
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts := SumBy(sources, func(s string) string { return s },
		func(string) decimal.Decimal { return decimal.NewFromInt(1) })
	shares := ShareOfTotal(counts)

	out := make([]LeadSourceCount, 0, len(counts))
	for src, n := range counts {
		out = append(out, LeadSourceCount{
			Source:   src,
			Contacts: int(n.IntPart()),
			Share:    shares[src],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Contacts != out[j].Contacts {
			return out[i].Contacts > out[j].Contacts
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}

// pipelineStageOrder fixes the funnel display order; stages the CRM never
// defined fall to the end alphabetically.
var pipelineStageOrder = map[string]int{
	"New":         0,
	"Contacted":   1,
	"Proposal":    2,
	"Negotiation": 3,
	"Won":         4,
	"Lost":        5,
}

func (s *reportingService) GetPipelineFunnel(ctx context.Context) ([]PipelineStageCount, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT pipeline_stage, COUNT(*) FROM contacts GROUP BY pipeline_stage")
	if err != nil {
		return nil, fmt.Errorf("failed to query pipeline stages: %w", err)
	}
	defer rows.Close()

	var out []PipelineStageCount
	for rows.Next() {
		var c PipelineStageCount
		if err := rows.Scan(&c.Stage, &c.Contacts); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline stage: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		oi, iok := pipelineStageOrder[out[i].Stage]
		oj, jok := pipelineStageOrder[out[j].Stage]
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		case jok:
			return false
		default:
			return out[i].Stage < out[j].Stage
		}
	})
	return out, nil
}

func (s *reportingService) GetClientRetention(ctx context.Context) (*ClientRetention, error) {
	var ret ClientRetention
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE accepted > 1)
		FROM (
			SELECT contact_id, COUNT(*) AS accepted
			FROM quotes
			WHERE status = 'Accepted'
			GROUP BY contact_id
		) per_client`,
	).Scan(&ret.TotalClients, &ret.ReturningClients)
	if err != nil {
		return nil, fmt.Errorf("failed to compute client retention: %w", err)
	}

	if ret.TotalClients > 0 {
		ret.RetentionRate = decimal.NewFromInt(int64(ret.ReturningClients)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(ret.TotalClients))).
			Round(2)
	}
	return &ret, nil
}

// ── Staff assignments ─────────────────────────────────────────────────────────

func (s *reportingService) GetStaffAssignments(ctx context.Context, from, to time.Time) ([]StaffAssignment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT staff_name, COUNT(DISTINCT event_id), COUNT(*), SUM(amount)
		FROM event_payroll
		WHERE work_date >= $1 AND work_date <= $2
		GROUP BY staff_name
		ORDER BY SUM(amount) DESC, staff_name`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff assignments: %w", err)
	}
	defer rows.Close()

	var out []StaffAssignment
	for rows.Next() {
		var a StaffAssignment
		if err := rows.Scan(&a.StaffName, &a.Events, &a.Entries, &a.TotalPaid); err != nil {
			return nil, fmt.Errorf("failed to scan staff assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ── Supplier performance ──────────────────────────────────────────────────────

func (s *reportingService) GetSupplierPerformance(ctx context.Context, from, to time.Time) ([]SupplierPerformance, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sup.id, sup.name,
		       COUNT(po.id),
		       COUNT(po.id) FILTER (WHERE po.status = 'Received'),
		       COUNT(po.id) FILTER (WHERE po.status = 'Cancelled'),
		       COALESCE(SUM(po.total_cost), 0)
		FROM suppliers sup
		JOIN purchase_orders po ON po.supplier_id = sup.id
		WHERE po.order_date >= $1 AND po.order_date <= $2
		GROUP BY sup.id, sup.name
		ORDER BY SUM(po.total_cost) DESC, sup.name`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier performance: %w", err)
	}
	defer rows.Close()

	var out []SupplierPerformance
	for rows.Next() {
		var p SupplierPerformance
		if err := rows.Scan(&p.SupplierID, &p.Name, &p.Orders, &p.Received, &p.Cancelled, &p.TotalSpend); err != nil {
			return nil, fmt.Errorf("failed to scan supplier performance: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ── Equipment usage ───────────────────────────────────────────────────────────

func (s *reportingService) GetEquipmentUsage(ctx context.Context, from, to time.Time) ([]EquipmentUsage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT eq.id, eq.name, COUNT(DISTINCT ee.event_id), SUM(ee.quantity)
		FROM event_equipment ee
		JOIN equipment eq ON eq.id = ee.equipment_id
		JOIN events ev ON ev.id = ee.event_id
		WHERE ev.event_date >= $1 AND ev.event_date <= $2
		GROUP BY eq.id, eq.name
		ORDER BY COUNT(DISTINCT ee.event_id) DESC, eq.name`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment usage: %w", err)
	}
	defer rows.Close()

	var out []EquipmentUsage
	for rows.Next() {
		var u EquipmentUsage
		if err := rows.Scan(&u.EquipmentID, &u.Name, &u.Events, &u.UnitsAssigned); err != nil {
			return nil, fmt.Errorf("failed to scan equipment usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ── Revenue by currency ───────────────────────────────────────────────────────

func (s *reportingService) GetRevenueByCurrency(ctx context.Context, from, to time.Time) ([]CurrencyRevenue, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT currency, SUM(total_amount), COUNT(*)
		FROM quotes
		WHERE status = 'Accepted'
		  AND quote_date >= $1 AND quote_date <= $2
		GROUP BY currency
		ORDER BY currency`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by currency: %w", err)
	}
	defer rows.Close()

	var out []CurrencyRevenue
	for rows.Next() {
		var r CurrencyRevenue
		if err := rows.Scan(&r.Currency, &r.Revenue, &r.Quotes); err != nil {
			return nil, fmt.Errorf("failed to scan currency revenue: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
