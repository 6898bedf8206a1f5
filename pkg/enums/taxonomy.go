package enums

import "strings"

// Taxonomy names a term classification axis.
type Taxonomy string

const (
	TaxonomyCategory Taxonomy = "product_cat"
	TaxonomyTag      Taxonomy = "product_tag"
)

// AttributeTaxonomyPrefix marks attribute term axes.
const AttributeTaxonomyPrefix = "pa_"

// String implements fmt.Stringer.
func (t Taxonomy) String() string {
	return string(t)
}

// AttributeTaxonomy derives the taxonomy name for an attribute slug ("color" -> "pa_color").
func AttributeTaxonomy(name string) Taxonomy {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(name, AttributeTaxonomyPrefix) {
		return Taxonomy(name)
	}
	return Taxonomy(AttributeTaxonomyPrefix + name)
}

// IsAttribute reports whether the taxonomy is a product attribute axis.
func (t Taxonomy) IsAttribute() bool {
	return strings.HasPrefix(string(t), AttributeTaxonomyPrefix) && len(t) > len(AttributeTaxonomyPrefix)
}
