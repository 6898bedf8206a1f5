package models

import "github.com/angelmondragon/skuexport/pkg/enums"

// Term is a category, tag or attribute value attached to products.
type Term struct {
	ID       int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Taxonomy enums.Taxonomy `gorm:"column:taxonomy;not null;uniqueIndex:idx_terms_taxonomy_slug,priority:1"`
	Slug     string         `gorm:"column:slug;not null;uniqueIndex:idx_terms_taxonomy_slug,priority:2"`
	Name     string         `gorm:"column:name;not null"`
}

// ProductTerm links a product to a term.
type ProductTerm struct {
	ProductID int64 `gorm:"column:product_id;primaryKey"`
	TermID    int64 `gorm:"column:term_id;primaryKey"`
}

// AttributeTaxonomy registers a global product attribute ("color" labelled "Color").
type AttributeTaxonomy struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:name;not null;uniqueIndex"`
	Label string `gorm:"column:label;not null"`
}

// Taxonomy returns the term taxonomy backing the attribute.
func (a AttributeTaxonomy) Taxonomy() enums.Taxonomy {
	return enums.AttributeTaxonomy(a.Name)
}

// CatalogModels lists the tables AutoMigrate manages for local SQLite catalogs.
func CatalogModels() []any {
	return []any{&Product{}, &Term{}, &ProductTerm{}, &AttributeTaxonomy{}}
}
