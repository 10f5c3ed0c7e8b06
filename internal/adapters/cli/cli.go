package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"desserts-ops/internal/app"
	"desserts-ops/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "unpaid", "u":
		invoices, err := svc.GetUnpaidInvoices(ctx)
		if err != nil {
			log.Fatalf("Failed to get unpaid invoices: %v", err)
		}
		printUnpaidInvoices(invoices)

	case "tax", "t":
		from, to := reportWindow(args[1:])
		report, err := svc.GetTaxReport(ctx, from, to)
		if err != nil {
			log.Fatalf("Failed to build tax report: %v", err)
		}
		printTaxReport(report)

	case "booked", "b":
		from, to := reportWindow(args[1:])
		booked, err := svc.GetServicesBooked(ctx, from, to)
		if err != nil {
			log.Fatalf("Failed to build services report: %v", err)
		}
		printServicesBooked(booked)

	case "quote", "q":
		if len(args) < 2 {
			log.Fatal("Usage: ops quote <id>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid quote id: %s", args[1])
		}
		quote, err := svc.GetQuote(ctx, id)
		if err != nil {
			log.Fatalf("Failed to get quote: %v", err)
		}
		printQuote(quote)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: unpaid, tax, booked, quote", args[0])
	}
}

// reportWindow parses optional [from] [to] date args, defaulting to the
// trailing 30 days.
func reportWindow(args []string) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)
	if len(args) > 0 {
		d, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			log.Fatalf("Invalid from date: %s (want YYYY-MM-DD)", args[0])
		}
		from = d
	}
	if len(args) > 1 {
		d, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			log.Fatalf("Invalid to date: %s (want YYYY-MM-DD)", args[1])
		}
		to = d
	}
	return from, to
}

func printUnpaidInvoices(invoices []core.Invoice) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  %-68s\n", "UNPAID INVOICES")
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  %-12s %-10s %12s %12s %12s\n", "NUMBER", "STATUS", "TOTAL", "PAID", "DUE")
	fmt.Println(strings.Repeat("-", 72))
	for _, inv := range invoices {
		fmt.Printf("  %-12s %-10s %12s %12s %12s\n",
			inv.InvoiceNumber, inv.Status,
			inv.TotalAmount.StringFixed(2), inv.AmountPaid.StringFixed(2),
			inv.DueDate.Format("2006-01-02"))
	}
	fmt.Println(strings.Repeat("=", 72))
}

func printTaxReport(report *core.TaxReport) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  TAX COLLECTED  %s to %s\n",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02"))
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  %-24s %8s %14s %14s\n", "RATE", "PCT", "TAXABLE", "COLLECTED")
	fmt.Println(strings.Repeat("-", 72))
	for _, line := range report.Lines {
		name := line.RateName
		if len(line.GroupNames) > 0 {
			name += " (" + strings.Join(line.GroupNames, ", ") + ")"
		}
		fmt.Printf("  %-24s %7s%% %14s %14s\n",
			name, line.Percentage.StringFixed(2),
			line.TaxableAmount.StringFixed(2), line.TaxCollected.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("  %-48s %14s\n", "TOTAL", report.TotalTaxCollected.StringFixed(2))
	fmt.Println(strings.Repeat("=", 72))
}

func printServicesBooked(booked []core.ServiceBooked) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  %-68s\n", "SERVICES BOOKED")
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("  %-30s %8s %14s %8s\n", "ITEM", "QTY", "REVENUE", "SHARE")
	fmt.Println(strings.Repeat("-", 72))
	for _, b := range booked {
		fmt.Printf("  %-30s %8d %14s %7s%%\n",
			b.Name, b.Quantity, b.Revenue.StringFixed(2), b.Share.StringFixed(1))
	}
	fmt.Println(strings.Repeat("=", 72))
}

func printQuote(q *core.Quote) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  QUOTE #%d  %s\n", q.ID, q.QuoteName)
	fmt.Printf("  Status   : %s\n", q.Status)
	fmt.Printf("  Date     : %s\n", q.QuoteDate.Format("2006-01-02"))
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-30s %6s %10s %10s\n", "ITEM", "QTY", "UNIT", "TOTAL")
	fmt.Println(strings.Repeat("-", 62))
	for _, l := range q.Lines {
		name := l.MenuItemName
		if name == "" {
			name = fmt.Sprintf("(removed item %d)", l.MenuItemID)
		}
		fmt.Printf("  %-30s %6d %10s %10s\n",
			name, l.Quantity, l.UnitPrice.StringFixed(2), l.TotalPrice.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("  %-48s %10s\n", "Subtotal", q.Subtotal.StringFixed(2))
	fmt.Printf("  %-48s %10s\n", "Tax", q.TaxAmount.StringFixed(2))
	fmt.Printf("  %-48s %10s\n", "Total", core.FormatMoney(q.TotalAmount, q.Currency))
	fmt.Println(strings.Repeat("=", 62))
}
