// Package catalog holds the immutable in-memory product inventory,
// loaded once at startup. Nothing outside this package mutates the
// stored products.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/vastrakart/assistant/internal/core/domain"
)

//go:embed products.json
var productsJSON []byte

type Catalog struct {
	products []domain.Product
}

// New loads the embedded product fixture.
func New() (Catalog, error) {
	const op = "catalog.New"
	return load(productsJSON, op)
}

// FromJSON builds a catalog from raw JSON data, mainly for tests.
func FromJSON(data []byte) (Catalog, error) {
	const op = "catalog.FromJSON"
	return load(data, op)
}

func load(data []byte, op string) (Catalog, error) {
	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, 0, len(records))
	for _, r := range records {
		ps = append(ps, r.toDomain())
	}
	return Catalog{ps}, nil
}

// Match returns the products satisfying every present constraint, in
// stored order. An empty FilterSet matches the whole catalog.
func (c Catalog) Match(f domain.FilterSet) []domain.Product {
	var matched []domain.Product
	for _, p := range c.products {
		if satisfies(p, f) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Resolve maps product ids to products, keeping catalog order. Unknown
// ids are skipped.
func (c Catalog) Resolve(ids []string) []domain.Product {
	var ps []domain.Product
	for _, p := range c.products {
		if slices.Contains(ids, p.ID) {
			ps = append(ps, p)
		}
	}
	return ps
}

func (c Catalog) All() []domain.Product {
	return slices.Clone(c.products)
}

func (c Catalog) Len() int {
	return len(c.products)
}

func satisfies(p domain.Product, f domain.FilterSet) bool {
	if !containsFold(p.Category, f.Category) {
		return false
	}
	if !containsFold(p.Color, f.Color) {
		return false
	}
	if !containsFold(p.Brand, f.Brand) {
		return false
	}
	if !containsFold(p.Material, f.Material) {
		return false
	}
	if !containsFold(p.Gender, f.Gender) {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	return true
}

func containsFold(field, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(filter))
}

type productRecord struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Brand    string   `json:"brand"`
	Color    string   `json:"color"`
	Material string   `json:"material"`
	Category string   `json:"category"`
	Gender   string   `json:"gender"`
	Price    int      `json:"price"`
	Size     []string `json:"size"`
	Rating   float64  `json:"rating"`
	Delivery string   `json:"delivery"`
	Image    string   `json:"image"`
	Link     string   `json:"link"`
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:       r.ID,
		Title:    r.Title,
		Brand:    r.Brand,
		Color:    r.Color,
		Material: r.Material,
		Category: r.Category,
		Gender:   r.Gender,
		Price:    r.Price,
		Size:     r.Size,
		Rating:   r.Rating,
		Delivery: r.Delivery,
		Image:    r.Image,
		Link:     r.Link,
	}
}
