package options

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/angelmondragon/skuexport/internal/cache"
	"github.com/angelmondragon/skuexport/internal/catalog"
	"github.com/angelmondragon/skuexport/pkg/enums"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
	"github.com/angelmondragon/skuexport/pkg/logger"
	"github.com/angelmondragon/skuexport/pkg/metrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	KindCategories = "categories"
	KindTags       = "tags"
	KindAttributes = "attributes"
)

var failureMessages = map[string]string{
	KindCategories: "Failed to load categories.",
	KindTags:       "Failed to load tags.",
	KindAttributes: "Failed to load attributes.",
}

// Option is one selectable filter value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Service lists the reference data used to pick filter values.
type Service interface {
	ListCategories(ctx context.Context) ([]Option, error)
	ListTags(ctx context.Context) ([]Option, error)
	ListAttributeValues(ctx context.Context) ([]Option, error)
	Warm(ctx context.Context) error
}

type service struct {
	terms    catalog.TermLister
	cache    *cache.Cache
	ttl      time.Duration
	logg     *logger.Logger
	language language.Tag
}

// NewService constructs the options service. Labels are ordered with the collation rules of lang.
func NewService(terms catalog.TermLister, c *cache.Cache, ttl time.Duration, logg *logger.Logger, lang language.Tag) (Service, error) {
	if terms == nil {
		return nil, fmt.Errorf("term lister required")
	}
	if c == nil {
		return nil, fmt.Errorf("cache required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("options cache ttl must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{terms: terms, cache: c, ttl: ttl, logg: logg, language: lang}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]Option, error) {
	return s.cached(ctx, KindCategories, func(ctx context.Context) ([]Option, error) {
		return s.termOptions(ctx, enums.TaxonomyCategory)
	})
}

func (s *service) ListTags(ctx context.Context) ([]Option, error) {
	return s.cached(ctx, KindTags, func(ctx context.Context) ([]Option, error) {
		return s.termOptions(ctx, enums.TaxonomyTag)
	})
}

// ListAttributeValues flattens every attribute taxonomy into "taxonomy|slug" options.
// Taxonomies whose terms cannot be listed are skipped.
func (s *service) ListAttributeValues(ctx context.Context) ([]Option, error) {
	return s.cached(ctx, KindAttributes, func(ctx context.Context) ([]Option, error) {
		attributes, err := s.terms.ListAttributeTaxonomies(ctx)
		if err != nil {
			return nil, err
		}
		out := []Option{}
		for _, attribute := range attributes {
			taxonomy := attribute.Taxonomy()
			terms, err := s.terms.ListTerms(ctx, taxonomy)
			if err != nil {
				s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
					"taxonomy": taxonomy.String(),
					"error":    err.Error(),
				}), "options.attribute_terms_skipped")
				continue
			}
			for _, term := range terms {
				out = append(out, Option{
					Value: taxonomy.String() + "|" + term.Slug,
					Label: attribute.Label + ": " + term.Name,
					Count: term.ProductCount,
				})
			}
		}
		s.sortByLabel(out)
		return out, nil
	})
}

// Warm fills every option cache concurrently.
func (s *service) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.ListCategories(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.ListTags(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.ListAttributeValues(ctx)
		return err
	})
	return g.Wait()
}

func (s *service) termOptions(ctx context.Context, taxonomy enums.Taxonomy) ([]Option, error) {
	terms, err := s.terms.ListTerms(ctx, taxonomy)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(terms))
	for _, term := range terms {
		out = append(out, Option{
			Value: strconv.FormatInt(term.ID, 10),
			Label: term.Name,
			Count: term.ProductCount,
		})
	}
	s.sortByLabel(out)
	return out, nil
}

func (s *service) cached(ctx context.Context, kind string, compute func(context.Context) ([]Option, error)) ([]Option, error) {
	key := s.cache.Store().OptionsKey(kind)
	opts, _, err := cache.GetOrCompute(ctx, s.cache, metrics.CacheOptions, key, s.ttl, compute)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, failureMessages[kind])
	}
	return opts, nil
}

// sortByLabel orders options by label using locale-aware collation; ties keep value order.
func (s *service) sortByLabel(opts []Option) {
	col := collate.New(s.language, collate.IgnoreCase)
	sort.SliceStable(opts, func(i, j int) bool {
		return col.CompareString(opts[i].Label, opts[j].Label) < 0
	})
}
