// Package catalog holds the read-only list of travel deals offered on calls.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"travel-intake-agent/internal/domain"
)

//go:embed deals.yaml
var defaultDeals []byte

type catalogFile struct {
	Deals []domain.Deal `yaml:"deals"`
}

// Catalog is an ordered, immutable list of deals.
type Catalog struct {
	deals []domain.Deal
}

// New builds a catalog from deals, validating each entry.
func New(deals []domain.Deal) (*Catalog, error) {
	if len(deals) == 0 {
		return nil, errors.New("catalog: at least one deal is required")
	}
	out := make([]domain.Deal, 0, len(deals))
	for i, d := range deals {
		d.Name = strings.TrimSpace(d.Name)
		d.Destination = strings.TrimSpace(d.Destination)
		if d.Name == "" {
			return nil, fmt.Errorf("catalog: deal %d: name is required", i)
		}
		if d.Destination == "" {
			return nil, fmt.Errorf("catalog: deal %q: destination is required", d.Name)
		}
		if d.Price <= 0 {
			return nil, fmt.Errorf("catalog: deal %q: price must be positive", d.Name)
		}
		out = append(out, d)
	}
	return &Catalog{deals: out}, nil
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return parse(defaultDeals)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return New(f.Deals)
}

// Deals returns a copy of every deal in catalog order.
func (c *Catalog) Deals() []domain.Deal {
	out := make([]domain.Deal, len(c.deals))
	copy(out, c.deals)
	return out
}

// Len returns the number of deals.
func (c *Catalog) Len() int {
	return len(c.deals)
}

// WithinBudget returns the deals priced at or below limit, in catalog order.
func (c *Catalog) WithinBudget(limit int) []domain.Deal {
	out := []domain.Deal{}
	for _, d := range c.deals {
		if d.Price <= limit {
			out = append(out, d)
		}
	}
	return out
}
