package enums

import (
	"fmt"
	"strings"
)

// StockStatus is the inventory state stored on every catalog product.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusBackorder  StockStatus = "backorder"
)

var validStockStatuses = []StockStatus{
	StockStatusInStock,
	StockStatusOutOfStock,
	StockStatusBackorder,
}

// Storefront exports spell the statuses without separators.
var stockStatusAliases = map[string]StockStatus{
	"instock":      StockStatusInStock,
	"outofstock":   StockStatusOutOfStock,
	"onbackorder":  StockStatusBackorder,
	"on_backorder": StockStatusBackorder,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input (canonical or alias) into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validStockStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	if alias, ok := stockStatusAliases[normalized]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
