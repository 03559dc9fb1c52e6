package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Load reads the full menu and tax policy. Called at startup and on
// admin reload; the result replaces the live catalog atomically.
func (r *PostgresRepository) Load(ctx context.Context) (*Catalog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price::text FROM menu_items ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query menu_items: %w", err)
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var item MenuItem
		var priceText string
		if err := rows.Scan(&item.ID, &item.Name, &priceText); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		item.Price, err = decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("bad price for %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("menu_items table is empty")
	}

	var tax TaxPolicy
	var rateText string
	err = r.db.QueryRow(ctx,
		`SELECT rate::text, description FROM tax_policy LIMIT 1`).
		Scan(&rateText, &tax.Description)
	if err != nil {
		return nil, fmt.Errorf("query tax_policy: %w", err)
	}
	tax.Rate, err = decimal.NewFromString(rateText)
	if err != nil {
		return nil, fmt.Errorf("bad tax rate: %w", err)
	}

	return New(items, tax), nil
}
