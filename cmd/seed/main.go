package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/pixelgrove/storefront/config"
	"github.com/pixelgrove/storefront/pkg/helpers"
)

type seedProduct struct {
	name        string
	description string
	price       float64
	stock       int
	categories  []string
	developer   string
	platform    string
	ratings     float64
}

var catalog = []seedProduct{
	{"Hollow Depths", "Descend into a hand-drawn cavern kingdom.", 24.99, 500, []string{"metroidvania", "indie"}, "Lantern Forge", "PC", 4.7},
	{"Starlane Tycoon", "Build freight empires across a procedurally generated galaxy.", 34.99, 300, []string{"strategy", "simulation"}, "Orbital Crate", "PC", 4.2},
	{"Redline Drift 5", "Arcade drifting with a full day-night weather cycle.", 59.99, 1000, []string{"racing"}, "Apex Motorworks", "PC", 4.0},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@pixelgrove.dev"
	password := "password123"
	name := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, is_admin)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, is_admin = TRUE
		RETURNING id
	`, email, hash, name).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded admin user: id=%s email=%s password=%s\n", userID, email, password)

	for _, p := range catalog {
		var id string
		err := db.QueryRow(`
			INSERT INTO products (name, description, price, count_in_stock, categories, developer, platform, ratings)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, p.name, p.description, p.price, p.stock, pq.Array(p.categories), p.developer, p.platform, p.ratings).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", p.name, err)
		}
		fmt.Printf("seeded product: id=%s name=%q\n", id, p.name)
	}
}
