package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "desserts-ops/internal/adapters/web"
	"desserts-ops/internal/app"
	"desserts-ops/internal/core"
	"desserts-ops/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
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

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
