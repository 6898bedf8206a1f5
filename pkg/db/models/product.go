package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/skuexport/pkg/enums"
)

// Product represents a catalog listing. Variations share the table and point at
// their variable parent through ParentID.
type Product struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement"`
	ParentID      *int64              `gorm:"column:parent_id;index:idx_products_parent_menu_order,priority:1"`
	SKU           string              `gorm:"column:sku;not null;default:''"`
	Name          string              `gorm:"column:name;not null"`
	Type          enums.ProductType   `gorm:"column:type;not null"`
	Status        enums.ProductStatus `gorm:"column:status;not null;default:publish"`
	Price         decimal.NullDecimal `gorm:"column:price;type:numeric(12,4)"`
	StockQuantity *int                `gorm:"column:stock_quantity"`
	StockStatus   enums.StockStatus   `gorm:"column:stock_status;not null;default:in_stock"`
	MenuOrder     int                 `gorm:"column:menu_order;not null;default:0;index:idx_products_parent_menu_order,priority:2"`
	Terms         []Term              `gorm:"many2many:product_terms;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// IsVariation reports whether the row is a child of a variable product.
func (p Product) IsVariation() bool {
	return p.ParentID != nil
}
