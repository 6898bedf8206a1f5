package catalog

import (
	"context"
	"strings"

	"github.com/angelmondragon/skuexport/pkg/db/models"
	"github.com/angelmondragon/skuexport/pkg/enums"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
	"gorm.io/gorm"
)

// Finder resolves a criterion into ordered product ids.
type Finder interface {
	Find(ctx context.Context, criterion Criterion) ([]int64, int, error)
}

// Loader batch-loads product rows for expansion.
type Loader interface {
	LoadProducts(ctx context.Context, ids []int64) (map[int64]models.Product, error)
	LoadVariations(ctx context.Context, parentIDs []int64) (map[int64][]models.Product, error)
}

// TermLister exposes reference data used by option providers.
type TermLister interface {
	ListTerms(ctx context.Context, taxonomy enums.Taxonomy) ([]TermCount, error)
	ListAttributeTaxonomies(ctx context.Context) ([]models.AttributeTaxonomy, error)
}

// TermCount is a term with the number of published products attached to it.
type TermCount struct {
	ID           int64
	Taxonomy     enums.Taxonomy
	Slug         string
	Name         string
	ProductCount int
}

const termMembershipClause = `EXISTS (
  SELECT 1 FROM product_terms pt
  JOIN terms t ON t.id = pt.term_id
  WHERE pt.product_id = products.id AND t.taxonomy = ? AND t.%s IN ?
)`

// Repository reads the catalog schema through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns published top-level product ids matching the criterion, newest first,
// together with the number of matches.
func (r *Repository) Find(ctx context.Context, criterion Criterion) ([]int64, int, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("products.status = ?", enums.ProductStatusPublish).
		Where("products.parent_id IS NULL")

	switch criterion.Kind {
	case KindAll, "":
	case KindSKU:
		query = query.Where(`LOWER(products.sku) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(criterion.SKU))+"%")
	case KindIDs:
		query = query.Where("products.id IN ?", criterion.IDs)
	case KindCategory:
		query = query.Where(termClause("id"), enums.TaxonomyCategory, criterion.TermIDs)
	case KindTag:
		query = query.Where(termClause("id"), enums.TaxonomyTag, criterion.TermIDs)
	case KindAttribute:
		clauses := make([]string, 0, len(criterion.Attributes))
		args := make([]any, 0, len(criterion.Attributes)*2)
		for _, group := range criterion.Attributes {
			clauses = append(clauses, termClause("slug"))
			args = append(args, group.Taxonomy, group.Slugs)
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	case KindStockStatus:
		query = query.Where("products.stock_status IN ?", criterion.StockStatuses)
	case KindProductType:
		query = query.Where("products.type IN ?", criterion.ProductTypes)
	default:
		return nil, 0, pkgerrors.New(pkgerrors.CodeInvalidFilterType, "Invalid filter type.")
	}

	var ids []int64
	if err := query.
		Order("products.created_at DESC").
		Order("products.id DESC").
		Pluck("products.id", &ids).
		Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog query failed")
	}
	return ids, len(ids), nil
}

// LoadProducts loads the rows for ids keyed by id. Unknown ids are absent from the map.
func (r *Repository) LoadProducts(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products failed")
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

// LoadVariations loads published variations grouped by parent, ordered by menu order then id.
func (r *Repository) LoadVariations(ctx context.Context, parentIDs []int64) (map[int64][]models.Product, error) {
	out := make(map[int64][]models.Product, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Where("status = ?", enums.ProductStatusPublish).
		Order("parent_id ASC").
		Order("menu_order ASC").
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variations failed")
	}
	for _, row := range rows {
		if row.ParentID == nil {
			continue
		}
		out[*row.ParentID] = append(out[*row.ParentID], row)
	}
	return out, nil
}

// ListTerms returns the terms of a taxonomy attached to at least one published product.
func (r *Repository) ListTerms(ctx context.Context, taxonomy enums.Taxonomy) ([]TermCount, error) {
	var rows []TermCount
	if err := r.db.WithContext(ctx).
		Table("terms AS t").
		Select("t.id AS id, t.taxonomy AS taxonomy, t.slug AS slug, t.name AS name, COUNT(DISTINCT p.id) AS product_count").
		Joins("JOIN product_terms pt ON pt.term_id = t.id").
		Joins("JOIN products p ON p.id = pt.product_id AND p.status = ?", enums.ProductStatusPublish).
		Where("t.taxonomy = ?", taxonomy).
		Group("t.id, t.taxonomy, t.slug, t.name").
		Order("t.name ASC").
		Scan(&rows).
		Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list terms failed")
	}
	return rows, nil
}

// ListAttributeTaxonomies returns every registered attribute ordered by name.
func (r *Repository) ListAttributeTaxonomies(ctx context.Context) ([]models.AttributeTaxonomy, error) {
	var rows []models.AttributeTaxonomy
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attribute taxonomies failed")
	}
	return rows, nil
}

func termClause(column string) string {
	return strings.Replace(termMembershipClause, "%s", column, 1)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
