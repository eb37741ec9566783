// Package main implements a standalone seed script that creates the
// storefront products table and populates it with realistic fashion
// products, complete with sizes, colors, and gallery images.
//
// Run: go run scripts/seed_catalog.go
//   (from the repo root, or: cd scripts && go run seed_catalog.go)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	totalProducts = 200
	batchSize     = 50
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "storefront"),
		getEnv("POSTGRES_PASSWORD", "storefront_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("CATALOG_DB_NAME", "catalog_db"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	selling_price    BIGINT NOT NULL,
	discounted_price BIGINT,
	category         TEXT NOT NULL,
	sub_category     TEXT NOT NULL DEFAULT '',
	sizes            JSONB NOT NULL DEFAULT '[]',
	color            TEXT NOT NULL DEFAULT '',
	best_seller_rank INT NOT NULL DEFAULT 0,
	main_image       TEXT NOT NULL DEFAULT '',
	images           JSONB,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);
CREATE INDEX IF NOT EXISTS idx_products_rank ON products (best_seller_rank DESC);
`

var categories = map[string][]string{
	"Suits":   {"Two Piece", "Three Piece", "Blazer", "Trouser Suit"},
	"Coats":   {"Wool", "Trench", "Puffer"},
	"Dresses": {"Maxi", "Midi", "Evening"},
	"Tops":    {"Shirt", "Blouse", "Knit"},
}

var adjectives = []string{
	"Classic", "Modern", "Tailored", "Statement", "Relaxed",
	"Structured", "Essential", "Signature", "Vintage", "Bold",
}

var colors = []string{
	"Navy", "Black", "Camel", "Burgundy", "Ivory",
	"Charcoal", "Olive", "Blush", "Teal",
}

var allSizes = []string{"XS", "S", "M", "L", "XL"}

type seedProduct struct {
	id              string
	name            string
	description     string
	sellingPrice    int64
	discountedPrice *int64
	category        string
	subCategory     string
	sizes           []string
	color           string
	rank            int
	mainImage       string
	images          []string
}

func makeProduct(rng *rand.Rand, n int) seedProduct {
	catNames := make([]string, 0, len(categories))
	for c := range categories {
		catNames = append(catNames, c)
	}
	category := catNames[rng.Intn(len(catNames))]
	subs := categories[category]
	sub := subs[rng.Intn(len(subs))]
	adj := adjectives[rng.Intn(len(adjectives))]
	color := colors[rng.Intn(len(colors))]

	name := fmt.Sprintf("%s %s %s", adj, color, sub)
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))

	price := int64(99 + rng.Intn(40)*25)
	var discounted *int64
	if rng.Intn(100) < 60 {
		d := price * int64(60+rng.Intn(30)) / 100
		discounted = &d
	}

	sizes := allSizes[:2+rng.Intn(len(allSizes)-1)]

	main := fmt.Sprintf("/images/products/%s.jpg", slug)
	images := []string{main}
	for i := 1; i <= rng.Intn(3); i++ {
		images = append(images, fmt.Sprintf("/images/products/%s-%d.jpg", slug, i))
	}

	return seedProduct{
		id:              fmt.Sprintf("prod-%04d", n),
		name:            name,
		description:     fmt.Sprintf("%s in %s with a %s cut.", sub, strings.ToLower(color), strings.ToLower(adj)),
		sellingPrice:    price,
		discountedPrice: discounted,
		category:        category,
		subCategory:     sub,
		sizes:           sizes,
		color:           color,
		rank:            rng.Intn(100),
		mainImage:       main,
		images:          images,
	}
}

func main() {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn())
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("create schema: %v", err)
	}
	log.Println("products table ready")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	start := time.Now()
	for batch := 0; batch < totalProducts; batch += batchSize {
		var (
			values []string
			args   []any
		)
		for i := 0; i < batchSize && batch+i < totalProducts; i++ {
			p := makeProduct(rng, batch+i+1)

			sizesJSON, err := json.Marshal(p.sizes)
			if err != nil {
				log.Fatalf("marshal sizes: %v", err)
			}
			imagesJSON, err := json.Marshal(p.images)
			if err != nil {
				log.Fatalf("marshal images: %v", err)
			}

			base := len(args)
			values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6,
				base+7, base+8, base+9, base+10, base+11, base+12))
			args = append(args,
				p.id, p.name, p.description, p.sellingPrice, p.discountedPrice,
				p.category, p.subCategory, sizesJSON, p.color, p.rank,
				p.mainImage, imagesJSON,
			)
		}

		query := `
			INSERT INTO products (
				id, name, description, selling_price, discounted_price,
				category, sub_category, sizes, color, best_seller_rank,
				main_image, images
			) VALUES ` + strings.Join(values, ",") + `
			ON CONFLICT (id) DO NOTHING`

		if _, err := pool.Exec(ctx, query, args...); err != nil {
			log.Fatalf("insert batch at %d: %v", batch, err)
		}
	}

	log.Printf("seeded %d products in %s", totalProducts, time.Since(start).Round(time.Millisecond))
}
