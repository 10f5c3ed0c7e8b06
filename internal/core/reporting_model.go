package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EventPnL is the profitability breakdown for one event. Revenue comes
// from the linked accepted quote's stored snapshot; COGS multiplies each
// quote line's quantity by the catalog item's current house cost.
type EventPnL struct {
	EventID     int             `json:"event_id"`
	EventName   string          `json:"event_name"`
	Revenue     decimal.Decimal `json:"revenue"`
	COGS        decimal.Decimal `json:"cogs"`
	Expenses    decimal.Decimal `json:"expenses"`
	Commissions decimal.Decimal `json:"commissions"`
	Payroll     decimal.Decimal `json:"payroll"`
	NetProfit   decimal.Decimal `json:"net_profit"`
}

// TaxReportLine aggregates tax collected under one rate across a period.
// Rates reached only through a group appear with the group name attached.
type TaxReportLine struct {
	RateID        int             `json:"rate_id"`
	RateName      string          `json:"rate_name"`
	Percentage    decimal.Decimal `json:"rate_percentage"`
	GroupNames    []string        `json:"group_names,omitempty"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxCollected  decimal.Decimal `json:"tax_collected"`
}

// TaxReport is the period tax summary.
type TaxReport struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	Lines             []TaxReportLine `json:"lines"`
	TotalTaxCollected decimal.Decimal `json:"total_tax_collected"`
}

// InventoryNeed is the forecast requirement for one ingredient over the
// booked (accepted) quotes in a period.
type InventoryNeed struct {
	IngredientID int             `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ServiceBooked summarizes one menu item's booked volume and revenue.
type ServiceBooked struct {
	MenuItemID int             `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
	Share      decimal.Decimal `json:"share"` // percent of period revenue
}

// PartnerCommissionTotal is a partner's commission total for a period.
type PartnerCommissionTotal struct {
	PartnerID   int             `json:"partner_id"`
	PartnerName string          `json:"partner_name"`
	Total       decimal.Decimal `json:"total"`
}

// CurrencyRevenue is accepted-quote revenue grouped by quote currency.
// No conversion is applied: each currency stands alone.
type CurrencyRevenue struct {
	Currency string          `json:"currency"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quotes   int             `json:"quotes"`
}

// LeadSourceCount is the contact volume attributed to one lead source.
type LeadSourceCount struct {
	Source   string          `json:"source"`
	Contacts int             `json:"contacts"`
	Share    decimal.Decimal `json:"share"` // percent of all contacts
}

// PipelineStageCount is one step of the sales funnel.
type PipelineStageCount struct {
	Stage    string `json:"stage"`
	Contacts int    `json:"contacts"`
}

// ClientRetention summarizes one-time versus repeat business. A client is
// any contact with at least one accepted quote; returning means two or more.
type ClientRetention struct {
	TotalClients     int             `json:"total_clients"`
	ReturningClients int             `json:"returning_clients"`
	RetentionRate    decimal.Decimal `json:"retention_rate"` // percent
}

// StaffAssignment totals one staff member's event work over a period.
type StaffAssignment struct {
	StaffName string          `json:"staff_name"`
	Events    int             `json:"events"`
	Entries   int             `json:"entries"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

// SupplierPerformance summarizes one supplier's purchase orders over a
// period, with the received/cancelled split as the delivery record.
type SupplierPerformance struct {
	SupplierID int             `json:"supplier_id"`
	Name       string          `json:"name"`
	Orders     int             `json:"orders"`
	Received   int             `json:"received"`
	Cancelled  int             `json:"cancelled"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

// EquipmentUsage counts how often and how heavily one equipment piece was
// assigned to events in a period.
type EquipmentUsage struct {
	EquipmentID   int    `json:"equipment_id"`
	Name          string `json:"name"`
	Events        int    `json:"events"`
	UnitsAssigned int    `json:"units_assigned"`
}

// ReportingService re-reads persisted quotes, line items, and finance
// records and derives the standard management reports. All reports use the
// stored snapshots, never a recomputation from current catalog prices.
type ReportingService interface {
	GetEventPnL(ctx context.Context, eventID int) (*EventPnL, error)
	// GetTaxReport covers accepted quotes whose quote_date falls in [from, to].
	GetTaxReport(ctx context.Context, from, to time.Time) (*TaxReport, error)
	GetInventoryNeeds(ctx context.Context, from, to time.Time) ([]InventoryNeed, error)
	GetServicesBooked(ctx context.Context, from, to time.Time) ([]ServiceBooked, error)
	GetUnpaidInvoices(ctx context.Context) ([]Invoice, error)
	GetCommissionTotals(ctx context.Context, from, to time.Time) ([]PartnerCommissionTotal, error)
	GetRevenueByCurrency(ctx context.Context, from, to time.Time) ([]CurrencyRevenue, error)

	GetLeadsBySource(ctx context.Context) ([]LeadSourceCount, error)
	GetPipelineFunnel(ctx context.Context) ([]PipelineStageCount, error)
	GetClientRetention(ctx context.Context) (*ClientRetention, error)
	// GetStaffAssignments covers payroll entries whose work_date falls in [from, to].
	GetStaffAssignments(ctx context.Context, from, to time.Time) ([]StaffAssignment, error)
	// GetSupplierPerformance covers purchase orders whose order_date falls in [from, to].
	GetSupplierPerformance(ctx context.Context, from, to time.Time) ([]SupplierPerformance, error)
	// GetEquipmentUsage covers assignments on events whose event_date falls in [from, to].
	GetEquipmentUsage(ctx context.Context, from, to time.Time) ([]EquipmentUsage, error)
}
