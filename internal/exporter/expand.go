package exporter

import (
	"context"
	"strings"

	"github.com/angelmondragon/skuexport/internal/catalog"
	"github.com/angelmondragon/skuexport/pkg/db/models"
	"github.com/angelmondragon/skuexport/pkg/enums"
	"github.com/shopspring/decimal"
)

// Projection is the per-product record rendered by the formatter and stored in the export cache.
type Projection struct {
	ID            int64               `json:"id"`
	SKU           string              `json:"sku"`
	Name          string              `json:"name"`
	Price         decimal.NullDecimal `json:"price"`
	StockQuantity *int                `json:"stock_quantity"`
	StockStatus   enums.StockStatus   `json:"stock_status"`
	Type          enums.ProductType   `json:"type"`
}

// Expander loads projections for resolved ids, optionally fanning variable products out
// into their variations.
type Expander struct {
	loader catalog.Loader
}

// NewExpander builds an Expander over the catalog loader.
func NewExpander(loader catalog.Loader) *Expander {
	return &Expander{loader: loader}
}

// Expand returns projections in id order. Missing records and products without a SKU
// are skipped; a skipped variable product also drops its variations. When
// includeVariations is set, each variable product is followed by its SKU-bearing
// variations.
func (e *Expander) Expand(ctx context.Context, ids []int64, includeVariations bool) ([]Projection, error) {
	products, err := e.loader.LoadProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	var variations map[int64][]models.Product
	if includeVariations {
		var parents []int64
		for _, id := range ids {
			if p, ok := products[id]; ok && p.Type == enums.ProductTypeVariable && hasSKU(p) {
				parents = append(parents, id)
			}
		}
		if len(parents) > 0 {
			variations, err = e.loader.LoadVariations(ctx, parents)
			if err != nil {
				return nil, err
			}
		}
	}

	out := make([]Projection, 0, len(ids))
	for _, id := range ids {
		product, ok := products[id]
		if !ok || !hasSKU(product) {
			continue
		}
		out = append(out, project(product))

		for _, variation := range variations[id] {
			if hasSKU(variation) {
				out = append(out, project(variation))
			}
		}
	}
	return out, nil
}

func hasSKU(p models.Product) bool {
	return strings.TrimSpace(p.SKU) != ""
}

func project(p models.Product) Projection {
	typ := p.Type
	if p.IsVariation() {
		typ = enums.ProductTypeVariation
	}
	return Projection{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		StockStatus:   p.StockStatus,
		Type:          typ,
	}
}
