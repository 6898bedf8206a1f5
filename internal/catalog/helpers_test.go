package catalog

import (
	"testing"
	"time"

	"github.com/angelmondragon/skuexport/pkg/db/models"
	"github.com/angelmondragon/skuexport/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.CatalogModels()...))
	return conn
}

type productOpt func(*models.Product)

func withParent(id int64) productOpt {
	return func(p *models.Product) { p.ParentID = &id }
}

func withStatus(status enums.ProductStatus) productOpt {
	return func(p *models.Product) { p.Status = status }
}

func withStock(status enums.StockStatus) productOpt {
	return func(p *models.Product) { p.StockStatus = status }
}

func withPrice(value string) productOpt {
	return func(p *models.Product) {
		p.Price = decimal.NullDecimal{Decimal: decimal.RequireFromString(value), Valid: true}
	}
}

func withMenuOrder(order int) productOpt {
	return func(p *models.Product) { p.MenuOrder = order }
}

// mustCreateProduct inserts a published product created `age` minutes after baseTime.
func mustCreateProduct(t *testing.T, tx *gorm.DB, sku string, typ enums.ProductType, age int, opts ...productOpt) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:         sku,
		Name:        "Product " + sku,
		Type:        typ,
		Status:      enums.ProductStatusPublish,
		StockStatus: enums.StockStatusInStock,
		CreatedAt:   baseTime.Add(time.Duration(age) * time.Minute),
	}
	for _, opt := range opts {
		opt(product)
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}

func mustCreateTerm(t *testing.T, tx *gorm.DB, taxonomy enums.Taxonomy, slug, name string) *models.Term {
	t.Helper()
	term := &models.Term{Taxonomy: taxonomy, Slug: slug, Name: name}
	require.NoError(t, tx.Create(term).Error)
	return term
}

func mustAttach(t *testing.T, tx *gorm.DB, product *models.Product, terms ...*models.Term) {
	t.Helper()
	for _, term := range terms {
		require.NoError(t, tx.Create(&models.ProductTerm{ProductID: product.ID, TermID: term.ID}).Error)
	}
}
