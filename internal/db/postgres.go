package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coreyonbreeze/pbc-x402-api/internal/catalog"
)

func Connect(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// initSchema creates the catalog tables and seeds them from the
// built-in menu when empty, so a fresh database serves the same menu
// as a database-less deployment.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	menuItemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			position INT NOT NULL DEFAULT 0
		)
	`
	if _, err := pool.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	taxPolicySQL := `
		CREATE TABLE IF NOT EXISTS tax_policy (
			id SERIAL PRIMARY KEY,
			rate NUMERIC(6,4) NOT NULL,
			description TEXT NOT NULL
		)
	`
	if _, err := pool.Exec(ctx, taxPolicySQL); err != nil {
		return err
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		builtin := catalog.Builtin()
		for i, item := range builtin.Items() {
			_, err := pool.Exec(ctx,
				`INSERT INTO menu_items (id, name, price, position) VALUES ($1, $2, $3, $4)`,
				item.ID, item.Name, item.Price.StringFixed(2), i)
			if err != nil {
				return err
			}
		}
		tax := builtin.Tax()
		_, err := pool.Exec(ctx,
			`INSERT INTO tax_policy (rate, description) VALUES ($1, $2)`,
			tax.Rate.String(), tax.Description)
		if err != nil {
			return err
		}
		log.Println("✅ Seeded catalog tables from built-in menu")
	}

	return nil
}
