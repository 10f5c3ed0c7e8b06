// seed loads demo data for local development: a small menu, tax setup,
// a handful of contacts, and an admin login (admin / admin123).
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"

	"desserts-ops/internal/core"
	"desserts-ops/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	log.Println("Seeding menu items...")
	_, err = pool.Exec(ctx, `
		INSERT INTO menu_items (name, category, description, item_cost, public_price, partner_price) VALUES
		('Tres Leches Cake',      'Cakes',    'Classic three-milk sponge, serves 12',   12.00, 45.00, 38.00),
		('Churro Platter',        'Catering', '50 fresh churros with dipping sauces',    9.50, 35.00, 28.00),
		('Flan Individual',       'Desserts', 'Single-serve caramel flan',               1.10,  5.50,  4.25),
		('Concha Assortment',     'Bakery',   'Dozen assorted conchas',                  4.80, 18.00, 14.50),
		('Dessert Table Setup',   'Services', 'On-site table styling and service',       0.00, 150.00, 120.00),
		('Mini Cheesecake Tray',  'Catering', '24 mini cheesecakes',                    11.00, 42.00, 34.00)
		ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed menu items: %v", err)
	}

	log.Println("Seeding ingredients and recipes...")
	_, err = pool.Exec(ctx, `
		INSERT INTO ingredients (name, unit) VALUES
		('Flour', 'kg'), ('Sugar', 'kg'), ('Eggs', 'dozen'),
		('Condensed Milk', 'can'), ('Cream Cheese', 'kg'), ('Cinnamon', 'g')
		ON CONFLICT DO NOTHING;

		INSERT INTO menu_item_ingredients (menu_item_id, ingredient_id, quantity_needed)
		SELECT m.id, i.id, v.qty
		FROM (VALUES
			('Tres Leches Cake', 'Flour',          0.60),
			('Tres Leches Cake', 'Condensed Milk', 2.00),
			('Tres Leches Cake', 'Eggs',           0.50),
			('Churro Platter',   'Flour',          0.80),
			('Churro Platter',   'Cinnamon',      30.00),
			('Mini Cheesecake Tray', 'Cream Cheese', 1.20)
		) AS v(item, ingredient, qty)
		JOIN menu_items m ON m.name = v.item
		JOIN ingredients i ON i.name = v.ingredient
		ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed recipes: %v", err)
	}

	log.Println("Seeding tax configuration...")
	_, err = pool.Exec(ctx, `
		INSERT INTO tax_rates (rate_name, rate_percentage) VALUES
		('IVA 16%', 16), ('IVA 8% Border', 8), ('ISH 3%', 3)
		ON CONFLICT DO NOTHING;

		INSERT INTO tax_groups (name, is_default)
		SELECT 'Standard (IVA 16%)', true
		WHERE NOT EXISTS (SELECT 1 FROM tax_groups);

		INSERT INTO tax_group_items (tax_group_id, tax_rate_id, priority)
		SELECT g.id, r.id, 0
		FROM tax_groups g, tax_rates r
		WHERE g.name = 'Standard (IVA 16%)' AND r.rate_name = 'IVA 16%'
		ON CONFLICT DO NOTHING;
	`)
	if err != nil {
		log.Fatalf("Failed to seed taxes: %v", err)
	}

	log.Println("Seeding contacts, partners, and suppliers...")
	_, err = pool.Exec(ctx, `
		INSERT INTO contacts (full_name, email, phone, company, status, pipeline_stage, lead_source, price_tier) VALUES
		('Mariana Flores', 'mariana@example.com', '555-0101', '',                  'Lead',          'Proposal', 'Instagram', 'Public/Direct'),
		('Diego Reyes',    'diego@example.com',   '555-0102', 'Reyes Eventos',     'Active Client', 'Won',      'Referral',  'Partner/Vendor'),
		('Sofía Castillo', 'sofia@example.com',   '555-0103', '',                  'Lead',          'New',      'Website',   'Public/Direct')
		ON CONFLICT DO NOTHING;

		INSERT INTO partners (name, email) VALUES
		('Eventos del Valle', 'contacto@eventosdelvalle.example'),
		('Bodas y Más',       'hola@bodasymas.example')
		ON CONFLICT DO NOTHING;

		INSERT INTO suppliers (name, contact_name, email, phone) VALUES
		('Harinas del Norte', 'Sra. Ortega', 'ventas@harinas.example', '555-0201'),
		('Lácteos La Vaquita', 'Sr. Peña',   'pedidos@vaquita.example', '555-0202')
		ON CONFLICT DO NOTHING;

		INSERT INTO equipment (name, category, quantity_owned, notes)
		SELECT v.name, v.category, v.qty, ''
		FROM (VALUES
			('Chafing dish',       'Serving',   8),
			('Chocolate fountain', 'Display',   2),
			('Folding table',      'Furniture', 12)
		) AS v(name, category, qty)
		WHERE NOT EXISTS (SELECT 1 FROM equipment);
	`)
	if err != nil {
		log.Fatalf("Failed to seed contacts: %v", err)
	}

	log.Println("Creating admin user...")
	users := core.NewUserService(pool)
	if _, err := users.GetByUsername(ctx, "admin"); err != nil {
		if _, err := users.CreateUser(ctx, "admin", "admin@example.com", "admin123", core.RoleAdmin, nil); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
	}

	log.Println("Seed complete.")
}
