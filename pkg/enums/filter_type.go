package enums

import "fmt"

// FilterType selects which criterion an export applies.
type FilterType string

const (
	FilterTypeAll         FilterType = "all"
	FilterTypeSKU         FilterType = "sku"
	FilterTypeID          FilterType = "id"
	FilterTypeCategory    FilterType = "category"
	FilterTypeTag         FilterType = "tag"
	FilterTypeAttribute   FilterType = "attribute"
	FilterTypeStockStatus FilterType = "stock_status"
	FilterTypeProductType FilterType = "product_type"
)

var validFilterTypes = []FilterType{
	FilterTypeAll,
	FilterTypeSKU,
	FilterTypeID,
	FilterTypeCategory,
	FilterTypeTag,
	FilterTypeAttribute,
	FilterTypeStockStatus,
	FilterTypeProductType,
}

// String implements fmt.Stringer.
func (f FilterType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FilterType.
func (f FilterType) IsValid() bool {
	for _, candidate := range validFilterTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFilterType converts raw input into a FilterType.
func ParseFilterType(value string) (FilterType, error) {
	for _, candidate := range validFilterTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid filter type %q", value)
}
