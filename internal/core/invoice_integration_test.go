package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"desserts-ops/internal/core"
)

// acceptedQuote drives a seeded quote through Draft -> Sent -> Accepted.
func acceptedQuote(t *testing.T, quotes core.QuoteService) *core.Quote {
	t.Helper()
	ctx := context.Background()

	q, err := quotes.CreateQuote(ctx, core.QuoteInput{
		ContactID: 1,
		Currency:  "USD",
		TaxRateID: intPtr(1),
		Selections: []core.Selection{
			{MenuItemID: 1, Quantity: 10, UnitPrice: dec("10.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if _, err := quotes.SendQuote(ctx, q.ID); err != nil {
		t.Fatalf("SendQuote: %v", err)
	}
	q, err = quotes.AcceptQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("AcceptQuote: %v", err)
	}
	return q
}

func TestInvoiceService_OnlyFromAcceptedQuote(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	quotes := core.NewQuoteService(pool)
	invoices := core.NewInvoiceService(pool)

	draft, err := quotes.CreateQuote(ctx, core.QuoteInput{
		ContactID: 2,
		Selections: []core.Selection{
			{MenuItemID: 2, Quantity: 1, UnitPrice: dec("6.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	due := time.Now().AddDate(0, 0, 30)
	_, err = invoices.CreateInvoice(ctx, draft.ID, "INV-0001", due)
	var ce *core.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError invoicing a Draft quote, got %v", err)
	}

	q := acceptedQuote(t, quotes)
	inv, err := invoices.CreateInvoice(ctx, q.ID, "INV-0002", due)
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if !inv.TotalAmount.Equal(q.TotalAmount) || inv.Currency != q.Currency {
		t.Errorf("invoice total/currency = %s %s, want %s %s",
			inv.TotalAmount, inv.Currency, q.TotalAmount, q.Currency)
	}
	if inv.Status != core.InvoiceDraft {
		t.Errorf("status = %s, want Draft", inv.Status)
	}
}

func TestInvoiceService_PaymentLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	quotes := core.NewQuoteService(pool)
	invoices := core.NewInvoiceService(pool)

	q := acceptedQuote(t, quotes) // total 116.00 (100 + 16% VAT)
	inv, err := invoices.CreateInvoice(ctx, q.ID, "INV-0100", time.Now().AddDate(0, 0, 14))
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	inv, err = invoices.RecordPayment(ctx, inv.ID, dec("50.00"), "Cash", time.Now())
	if err != nil {
		t.Fatalf("RecordPayment(partial): %v", err)
	}
	if inv.Status != core.InvoicePartial || !inv.AmountPaid.Equal(dec("50.00")) {
		t.Errorf("after partial: status=%s paid=%s", inv.Status, inv.AmountPaid)
	}

	inv, err = invoices.RecordPayment(ctx, inv.ID, dec("66.00"), "Bank Transfer", time.Now())
	if err != nil {
		t.Fatalf("RecordPayment(final): %v", err)
	}
	if inv.Status != core.InvoicePaid || !inv.AmountPaid.Equal(dec("116.00")) {
		t.Errorf("after final: status=%s paid=%s", inv.Status, inv.AmountPaid)
	}

	pays, err := invoices.ListPayments(ctx, inv.ID)
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(pays) != 2 {
		t.Errorf("payments = %d, want 2", len(pays))
	}

	reporting := core.NewReportingService(pool)
	unpaid, err := reporting.GetUnpaidInvoices(ctx)
	if err != nil {
		t.Fatalf("GetUnpaidInvoices: %v", err)
	}
	for _, u := range unpaid {
		if u.ID == inv.ID {
			t.Error("settled invoice still reported unpaid")
		}
	}
}
