package exporter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/angelmondragon/skuexport/internal/catalog"
	"github.com/angelmondragon/skuexport/pkg/enums"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
)

const (
	msgInvalidFilterType  = "Invalid filter type."
	msgMissingFilterValue = "Please provide a filter value."
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Resolve turns a raw filter type and its values into a catalog criterion.
// Unknown types are rejected. Values that reduce to nothing widen the query to
// every product, unless strict is set, in which case they are rejected.
func Resolve(filterType string, values []string, strict bool) (catalog.Criterion, error) {
	kind, err := enums.ParseFilterType(SanitizeText(filterType))
	if err != nil {
		return catalog.Criterion{}, pkgerrors.Wrap(pkgerrors.CodeInvalidFilterType, err, msgInvalidFilterType)
	}

	cleaned := SanitizeValues(values)
	criterion := resolveKind(kind, cleaned)
	if criterion.Kind == catalog.KindAll && kind != enums.FilterTypeAll && strict {
		return catalog.Criterion{}, pkgerrors.New(pkgerrors.CodeValidation, msgMissingFilterValue).
			WithDetails(map[string]any{"filter_type": kind.String()})
	}
	return criterion, nil
}

func resolveKind(kind enums.FilterType, values []string) catalog.Criterion {
	switch kind {
	case enums.FilterTypeSKU:
		if len(values) == 0 {
			return catalog.All()
		}
		return catalog.SKUContains(values[0])

	case enums.FilterTypeID:
		if ids := parseIDs(values); len(ids) > 0 {
			return catalog.IDIn(ids)
		}

	case enums.FilterTypeCategory:
		if ids := parseIDs(values); len(ids) > 0 {
			return catalog.CategoryIn(ids)
		}

	case enums.FilterTypeTag:
		if ids := parseIDs(values); len(ids) > 0 {
			return catalog.TagIn(ids)
		}

	case enums.FilterTypeAttribute:
		if groups := parseAttributeGroups(values); len(groups) > 0 {
			return catalog.AttributeIn(groups)
		}

	case enums.FilterTypeStockStatus:
		seen := map[enums.StockStatus]struct{}{}
		var statuses []enums.StockStatus
		for _, value := range values {
			status, err := enums.ParseStockStatus(value)
			if err != nil {
				continue
			}
			if _, dup := seen[status]; dup {
				continue
			}
			seen[status] = struct{}{}
			statuses = append(statuses, status)
		}
		if len(statuses) > 0 {
			return catalog.StockStatusIn(statuses)
		}

	case enums.FilterTypeProductType:
		seen := map[enums.ProductType]struct{}{}
		var types []enums.ProductType
		for _, value := range values {
			typ, err := enums.ParseFilterableProductType(value)
			if err != nil {
				continue
			}
			if _, dup := seen[typ]; dup {
				continue
			}
			seen[typ] = struct{}{}
			types = append(types, typ)
		}
		if len(types) > 0 {
			return catalog.ProductTypeIn(types)
		}
	}
	return catalog.All()
}

// parseIDs splits every value on commas and keeps positive integers in first-seen order.
func parseIDs(values []string) []int64 {
	seen := map[int64]struct{}{}
	var ids []int64
	for _, value := range values {
		for _, token := range strings.Split(value, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
			if err != nil || id <= 0 {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// parseAttributeGroups groups "pa_*|slug" tokens by taxonomy in first-seen order.
// Tokens naming a non-attribute taxonomy are dropped.
func parseAttributeGroups(values []string) []catalog.AttributeGroup {
	index := map[enums.Taxonomy]int{}
	var groups []catalog.AttributeGroup
	for _, value := range values {
		parts := strings.Split(value, "|")
		if len(parts) != 2 {
			continue
		}
		taxonomy := enums.Taxonomy(strings.TrimSpace(parts[0]))
		slug := strings.TrimSpace(parts[1])
		if !taxonomy.IsAttribute() || slug == "" {
			continue
		}
		pos, ok := index[taxonomy]
		if !ok {
			pos = len(groups)
			index[taxonomy] = pos
			groups = append(groups, catalog.AttributeGroup{Taxonomy: taxonomy})
		}
		if !containsString(groups[pos].Slugs, slug) {
			groups[pos].Slugs = append(groups[pos].Slugs, slug)
		}
	}
	return groups
}

// SanitizeText strips markup, collapses whitespace and trims, the way admin text fields are cleaned.
func SanitizeText(value string) string {
	value = tagPattern.ReplaceAllString(value, "")
	value = whitespacePattern.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// SanitizeValues cleans every value and drops empties and duplicates, preserving order.
func SanitizeValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		cleaned := SanitizeText(value)
		if cleaned == "" || containsString(out, cleaned) {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
