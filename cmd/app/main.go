// One-shot operations CLI for quick checks from a terminal.
//
// Usage:
//
//	go run ./cmd/app unpaid
//	go run ./cmd/app tax 2026-01-01 2026-03-31
//	go run ./cmd/app booked
//	go run ./cmd/app quote 42
package main

import (
	"context"
	"log"
	"os"

	"desserts-ops/internal/adapters/cli"
	"desserts-ops/internal/app"
	"desserts-ops/internal/core"
	"desserts-ops/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("Usage: app <unpaid|tax|booked|quote> [args]")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	svc := app.NewAppService(
		pool,
		core.NewContactService(pool),
		core.NewCatalogService(pool),
		core.NewTaxService(pool),
		core.NewQuoteService(pool),
		core.NewInvoiceService(pool),
		core.NewFinanceService(pool),
		core.NewEquipmentService(pool),
		core.NewPurchaseService(pool),
		core.NewReportingService(pool),
		core.NewUserService(pool),
	)

	cli.Run(ctx, svc, os.Args[1:])
}
