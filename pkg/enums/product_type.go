package enums

import (
	"fmt"
	"strings"
)

// ProductType distinguishes catalog records; variations only exist under a variable parent.
type ProductType string

const (
	ProductTypeSimple    ProductType = "simple"
	ProductTypeVariable  ProductType = "variable"
	ProductTypeGrouped   ProductType = "grouped"
	ProductTypeExternal  ProductType = "external"
	ProductTypeVariation ProductType = "variation"
)

// Variations are not filterable; they are reached through their parent.
var filterableProductTypes = []ProductType{
	ProductTypeSimple,
	ProductTypeVariable,
	ProductTypeGrouped,
	ProductTypeExternal,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	return p == ProductTypeVariation || p.IsFilterable()
}

// IsFilterable reports whether the type can be selected by the product_type filter.
func (p ProductType) IsFilterable() bool {
	for _, candidate := range filterableProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseFilterableProductType converts raw input into a top-level ProductType.
func ParseFilterableProductType(value string) (ProductType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range filterableProductTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

// ProductStatus mirrors the publication state of a catalog record.
type ProductStatus string

const (
	ProductStatusPublish ProductStatus = "publish"
	ProductStatusDraft   ProductStatus = "draft"
	ProductStatusPrivate ProductStatus = "private"
	ProductStatusTrash   ProductStatus = "trash"
)

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}
