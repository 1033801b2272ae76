package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
	"github.com/Ananth-NQI/tokopesan-backend/internal/storage"
)

// CatalogProduct is a product the assistant knows by name
type CatalogProduct struct {
	Name  string `yaml:"name"`
	Emoji string `yaml:"emoji"`
	Price int64  `yaml:"price"` // list price shown in catalog and price list
	Stock int    `yaml:"stock"` // initial stock for the local inventory service
}

// Title returns the display name, e.g. "Buku"
func (p CatalogProduct) Title() string {
	return titleCase(p.Name)
}

// Catalog is the ordered product list. Order is the discovery order used in listings.
type Catalog struct {
	Products []CatalogProduct `yaml:"products"`
}

// DefaultCatalog is the three product demo store
func DefaultCatalog() *Catalog {
	return &Catalog{Products: []CatalogProduct{
		{Name: "buku", Emoji: "📚", Price: 30000, Stock: 20},
		{Name: "pensil", Emoji: "✏️", Price: 4000, Stock: 100},
		{Name: "laptop", Emoji: "💻", Price: 7500000, Stock: 5},
	}}
}

// LoadCatalog reads a YAML catalog file, e.g.
//
//	products:
//	  - name: buku
//	    emoji: "📚"
//	    price: 30000
//	    stock: 20
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", path)
	}
	seen := make(map[string]bool)
	for i := range c.Products {
		p := &c.Products[i]
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			return nil, fmt.Errorf("catalog product %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("catalog product %q is listed twice", p.Name)
		}
		seen[p.Name] = true
		if p.Emoji == "" {
			p.Emoji = "📦"
		}
	}
	return &c, nil
}

// Names returns product names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Products))
	for i, p := range c.Products {
		names[i] = p.Name
	}
	return names
}

// Find looks a product up by exact name
func (c *Catalog) Find(name string) (CatalogProduct, bool) {
	for _, p := range c.Products {
		if p.Name == name {
			return p, true
		}
	}
	return CatalogProduct{}, false
}

// Emoji returns the product emoji, or a parcel for unknown products
func (c *Catalog) Emoji(name string) string {
	if p, ok := c.Find(name); ok {
		return p.Emoji
	}
	return "📦"
}

// Mentioned returns the first catalog product whose name occurs in msg
func (c *Catalog) Mentioned(msg string) (CatalogProduct, bool) {
	for _, p := range c.Products {
		if strings.Contains(msg, p.Name) {
			return p, true
		}
	}
	return CatalogProduct{}, false
}

// Resolve maps a user token to a catalog product name, tolerating typos.
// Unknown tokens are returned unchanged.
func (c *Catalog) Resolve(token string) string {
	token = strings.ToLower(token)
	if _, ok := c.Find(token); ok {
		return token
	}
	if len([]rune(token)) <= DefaultFuzzyThreshold {
		return token
	}
	best, bestDist := "", DefaultFuzzyThreshold+1
	for _, p := range c.Products {
		if !FuzzyEquals(token, p.Name, DefaultFuzzyThreshold) {
			continue
		}
		if d := EditDistance(token, p.Name); d < bestDist {
			best, bestDist = p.Name, d
		}
	}
	if best == "" {
		return token
	}
	return best
}

// Seed writes the catalog into an inventory store
func (c *Catalog) Seed(store storage.Store) error {
	for _, p := range c.Products {
		if err := store.UpsertProduct(&models.Product{Name: p.Name, Price: p.Price, Stock: p.Stock}); err != nil {
			return fmt.Errorf("seed %s: %w", p.Name, err)
		}
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
