package domain

import "strings"

// Product identifies an item in the shop's fixed catalog.
type Product string

const (
	ProductMilk      Product = "Milk"
	ProductBiscuit   Product = "Biscuit"
	ProductBread     Product = "Bread"
	ProductJuice     Product = "Juice"
	ProductRice      Product = "Rice"
	ProductOil       Product = "Oil"
	ProductChocolate Product = "Chocolate"
	ProductSalt      Product = "Salt"
	ProductSoap      Product = "Soap"
	ProductTissue    Product = "Tissue"
)

// CatalogEntry pairs a product with the label shown on the product picker.
type CatalogEntry struct {
	Product Product `json:"product"`
	Label   string  `json:"label"`
}

var catalog = []CatalogEntry{
	{Product: ProductMilk, Label: "🥛 Milk"},
	{Product: ProductBiscuit, Label: "🍪 Biscuit"},
	{Product: ProductBread, Label: "🍞 Bread"},
	{Product: ProductJuice, Label: "🧃 Juice"},
	{Product: ProductRice, Label: "🍚 Rice"},
	{Product: ProductOil, Label: "🛢️ Oil"},
	{Product: ProductChocolate, Label: "🍫 Chocolate"},
	{Product: ProductSalt, Label: "🧂 Salt"},
	{Product: ProductSoap, Label: "🧼 Soap"},
	{Product: ProductTissue, Label: "🧻 Tissue"},
}

var productsByName = func() map[string]Product {
	m := make(map[string]Product, len(catalog))
	for _, entry := range catalog {
		m[strings.ToLower(string(entry.Product))] = entry.Product
	}
	return m
}()

// Catalog returns the product picker entries in display order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// ParseProduct returns the catalog product for a name (case-insensitive).
func ParseProduct(name string) (Product, bool) {
	p, ok := productsByName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Valid reports whether p belongs to the catalog.
func (p Product) Valid() bool {
	_, ok := productsByName[strings.ToLower(string(p))]
	return ok
}

// Label returns the display label for p, falling back to its name.
func (p Product) Label() string {
	for _, entry := range catalog {
		if entry.Product == p {
			return entry.Label
		}
	}
	return string(p)
}
