package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/coreyonbreeze/pbc-x402-api/internal/catalog"
)

type LineItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Summary is a priced order: line items in scan order plus totals.
// All amounts are rounded to 2 places exactly once, when finalized.
type Summary struct {
	Items      []LineItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	TotalCents int64           `json:"total_cents"`
}

// Calculate prices item ids against the catalog.
// PURE business logic (no I/O, no clock). Unknown ids are dropped
// silently; duplicated ids price once per occurrence; result order
// follows the scan order of the input.
func Calculate(cat *catalog.Catalog, ids []string) Summary {
	s := Summary{Items: []LineItem{}}

	subtotal := decimal.Zero
	for _, id := range ids {
		item, ok := cat.Lookup(id)
		if !ok {
			continue
		}
		s.Items = append(s.Items, LineItem{ID: item.ID, Name: item.Name, Price: item.Price})
		subtotal = subtotal.Add(item.Price)
	}

	s.Subtotal = subtotal.Round(2)
	s.Tax = subtotal.Mul(cat.Tax().Rate).Round(2)
	s.Total = s.Subtotal.Add(s.Tax).Round(2)
	s.TotalCents = s.Total.Mul(decimal.NewFromInt(100)).IntPart()

	return s
}

// UnknownIDs reports which ids Calculate would drop, for error bodies.
func UnknownIDs(cat *catalog.Catalog, ids []string) []string {
	var unknown []string
	for _, id := range ids {
		if _, ok := cat.Lookup(id); !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown
}
