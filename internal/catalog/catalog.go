package catalog

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("product not found")

type Category string

const (
	CategorySnowboards  Category = "snowboards"
	CategoryBindings    Category = "bindings"
	CategoryBoots       Category = "boots"
	CategoryAccessories Category = "accessories"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySnowboards, CategoryBindings, CategoryBoots, CategoryAccessories:
		return true
	}
	return false
}

type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    Category          `json:"category"`
	Price       float64           `json:"price"`
	Description string            `json:"description"`
	Features    []string          `json:"features"`
	Specs       map[string]string `json:"specs"`
	Stock       int               `json:"stock"`
	Rating      float64           `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	Image       string            `json:"image"`
}

func (p Product) InStock() bool { return p.Stock > 0 }

// Catalog is the read-only product seed for a run. It is never mutated
// after construction, so lookups need no locking.
type Catalog struct {
	products []Product
	byID     map[string]int
}

func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) ByCategory(cat Category) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	return c.products[i], nil
}

func (c *Catalog) Len() int { return len(c.products) }
