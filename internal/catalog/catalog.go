package catalog

import "github.com/shopspring/decimal"

// MenuItem is a sellable item. Immutable once the catalog is built.
type MenuItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// TaxPolicy applies one flat rate to every order subtotal.
type TaxPolicy struct {
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
}

// Catalog is the read-only menu shared by every request. Built once,
// never mutated; safe for concurrent reads.
type Catalog struct {
	items []MenuItem
	index map[string]int
	tax   TaxPolicy
}

func New(items []MenuItem, tax TaxPolicy) *Catalog {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID] = i
	}
	return &Catalog{items: items, index: index, tax: tax}
}

// Items returns menu items in listing order.
func (c *Catalog) Items() []MenuItem {
	return c.items
}

func (c *Catalog) Lookup(id string) (MenuItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return MenuItem{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Tax() TaxPolicy {
	return c.tax
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Builtin is the menu served when no database is configured.
func Builtin() *Catalog {
	items := []MenuItem{
		{ID: "brisket", Name: "Smoked Brisket Sandwich", Price: price("9.50")},
		{ID: "pulled-pork", Name: "Pulled Pork Sandwich", Price: price("8.75")},
		{ID: "smoked-turkey", Name: "Smoked Turkey Sandwich", Price: price("8.25")},
		{ID: "chips", Name: "Kettle Chips", Price: price("3.00")},
		{ID: "pickle-spear", Name: "Pickle Spear", Price: price("1.25")},
		{ID: "sweet-tea", Name: "Sweet Tea", Price: price("2.50")},
		{ID: "banana-pudding", Name: "Banana Pudding", Price: price("4.00")},
	}
	tax := TaxPolicy{
		Rate:        price("0.0875"),
		Description: "prepared food tax",
	}
	return New(items, tax)
}
