package catalog

import "github.com/angelmondragon/skuexport/pkg/enums"

// CriterionKind identifies which single filter a Criterion applies.
type CriterionKind string

const (
	KindAll         CriterionKind = "all"
	KindSKU         CriterionKind = "sku"
	KindIDs         CriterionKind = "id"
	KindCategory    CriterionKind = "category"
	KindTag         CriterionKind = "tag"
	KindAttribute   CriterionKind = "attribute"
	KindStockStatus CriterionKind = "stock_status"
	KindProductType CriterionKind = "product_type"
)

// AttributeGroup selects products carrying any of Slugs within one attribute taxonomy.
type AttributeGroup struct {
	Taxonomy enums.Taxonomy
	Slugs    []string
}

// Criterion is the resolved filter handed to the repository. Only the field matching Kind is set.
type Criterion struct {
	Kind          CriterionKind
	SKU           string
	IDs           []int64
	TermIDs       []int64
	Attributes    []AttributeGroup
	StockStatuses []enums.StockStatus
	ProductTypes  []enums.ProductType
}

// All matches every published top-level product.
func All() Criterion {
	return Criterion{Kind: KindAll}
}

// SKUContains matches SKUs containing text, case-insensitively.
func SKUContains(text string) Criterion {
	return Criterion{Kind: KindSKU, SKU: text}
}

// IDIn matches explicit product ids.
func IDIn(ids []int64) Criterion {
	return Criterion{Kind: KindIDs, IDs: ids}
}

// CategoryIn matches products in any of the category term ids.
func CategoryIn(termIDs []int64) Criterion {
	return Criterion{Kind: KindCategory, TermIDs: termIDs}
}

// TagIn matches products carrying any of the tag term ids.
func TagIn(termIDs []int64) Criterion {
	return Criterion{Kind: KindTag, TermIDs: termIDs}
}

// AttributeIn matches products carrying any of the listed attribute values.
func AttributeIn(groups []AttributeGroup) Criterion {
	return Criterion{Kind: KindAttribute, Attributes: groups}
}

// StockStatusIn matches products in any of the stock statuses.
func StockStatusIn(statuses []enums.StockStatus) Criterion {
	return Criterion{Kind: KindStockStatus, StockStatuses: statuses}
}

// ProductTypeIn matches products of any of the types.
func ProductTypeIn(types []enums.ProductType) Criterion {
	return Criterion{Kind: KindProductType, ProductTypes: types}
}
