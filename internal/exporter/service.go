package exporter

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/skuexport/internal/cache"
	"github.com/angelmondragon/skuexport/internal/catalog"
	"github.com/angelmondragon/skuexport/pkg/enums"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
	"github.com/angelmondragon/skuexport/pkg/logger"
	"github.com/angelmondragon/skuexport/pkg/metrics"
)

const (
	msgNoProducts = "No products found matching the criteria."
	msgNoSKUs     = "%d product(s) found, but none have SKUs assigned. Please add SKUs to your products in the catalog."
	msgExported   = "%d product(s) exported."
)

// Service runs SKU exports.
type Service interface {
	Export(ctx context.Context, req Request) (*Result, error)
}

// Request carries one export invocation. Format and Delimiter only affect rendering.
type Request struct {
	FilterType        string
	FilterValues      []string
	IncludeVariations bool
	Format            enums.ExportFormat
	Delimiter         enums.Delimiter
}

// Result is the rendered export.
type Result struct {
	SKUs          string
	Count         int
	Message       string
	ProductsFound int
	Cached        bool
}

// cacheEntry is the memoized pipeline output for one filter tuple.
type cacheEntry struct {
	Products      []Projection `json:"products"`
	ProductsFound int          `json:"products_found"`
}

// ServiceParams groups the collaborators of the export service.
type ServiceParams struct {
	Finder    catalog.Finder
	Expander  *Expander
	Formatter Formatter
	Cache     *cache.Cache
	TTL       time.Duration
	Strict    bool
	Logger    *logger.Logger
	Metrics   *metrics.ExportMetrics
}

type service struct {
	finder    catalog.Finder
	expander  *Expander
	formatter Formatter
	cache     *cache.Cache
	ttl       time.Duration
	strict    bool
	logg      *logger.Logger
	metrics   *metrics.ExportMetrics
}

// NewService constructs the export service.
func NewService(params ServiceParams) (Service, error) {
	if params.Finder == nil {
		return nil, fmt.Errorf("catalog finder required")
	}
	if params.Expander == nil {
		return nil, fmt.Errorf("expander required")
	}
	if params.Cache == nil {
		return nil, fmt.Errorf("cache required")
	}
	if params.TTL <= 0 {
		return nil, fmt.Errorf("export cache ttl must be positive")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		finder:    params.Finder,
		expander:  params.Expander,
		formatter: params.Formatter,
		cache:     params.Cache,
		ttl:       params.TTL,
		strict:    params.Strict,
		logg:      params.Logger,
		metrics:   params.Metrics,
	}, nil
}

// Export resolves the filter, reads or fills the export cache and renders the result.
func (s *service) Export(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	filterType := SanitizeText(req.FilterType)
	ctx = s.logg.WithExport(ctx, filterType, req.IncludeVariations)

	if _, err := enums.ParseFilterType(filterType); err != nil {
		s.metrics.IncRequest(filterType, metrics.OutcomeInvalidFilter)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidFilterType, err, msgInvalidFilterType)
	}

	values := SanitizeValues(req.FilterValues)
	hash, err := cache.HashKey(filterType, values, req.IncludeVariations)
	if err != nil {
		s.metrics.IncRequest(filterType, metrics.OutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building export cache key")
	}

	entry, hit, err := cache.GetOrCompute(ctx, s.cache, metrics.CacheExport, s.cache.Store().ExportKey(hash), s.ttl,
		func(ctx context.Context) (cacheEntry, error) {
			return s.compute(ctx, filterType, values, req.IncludeVariations)
		})
	if err != nil {
		outcome := metrics.OutcomeError
		if pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			outcome = metrics.OutcomeInvalidFilter
		}
		s.metrics.IncRequest(filterType, outcome)
		return nil, err
	}

	result := &Result{
		ProductsFound: entry.ProductsFound,
		Cached:        hit,
	}
	switch {
	case len(entry.Products) == 0 && entry.ProductsFound == 0:
		result.Message = msgNoProducts
	case len(entry.Products) == 0:
		result.Message = fmt.Sprintf(msgNoSKUs, entry.ProductsFound)
	default:
		result.SKUs = s.formatter.Format(entry.Products, req.Format, req.Delimiter)
		result.Count = len(entry.Products)
		result.Message = fmt.Sprintf(msgExported, result.Count)
	}

	outcome := metrics.OutcomeSuccess
	if result.Count == 0 {
		outcome = metrics.OutcomeEmpty
	}
	s.metrics.IncRequest(filterType, outcome)
	s.metrics.ObserveCount(filterType, result.Count)
	s.metrics.ObserveDuration(filterType, time.Since(started))

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"count":          result.Count,
		"products_found": result.ProductsFound,
		"cached":         hit,
		"format":         req.Format.String(),
	}), "export.completed")

	return result, nil
}

func (s *service) compute(ctx context.Context, filterType string, values []string, includeVariations bool) (cacheEntry, error) {
	criterion, err := Resolve(filterType, values, s.strict)
	if err != nil {
		return cacheEntry{}, err
	}
	ids, found, err := s.finder.Find(ctx, criterion)
	if err != nil {
		return cacheEntry{}, err
	}
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
		"criterion": string(criterion.Kind),
		"found":     found,
	}), "export.resolved")
	products, err := s.expander.Expand(ctx, ids, includeVariations)
	if err != nil {
		return cacheEntry{}, err
	}
	return cacheEntry{Products: products, ProductsFound: found}, nil
}
