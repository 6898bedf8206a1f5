package exporter

import (
	"strconv"
	"strings"

	"github.com/angelmondragon/skuexport/pkg/config"
	"github.com/angelmondragon/skuexport/pkg/enums"
	"github.com/shopspring/decimal"
)

const (
	notAvailable = "N/A"

	CurrencyLeft       = "left"
	CurrencyRight      = "right"
	CurrencyLeftSpace  = "left_space"
	CurrencyRightSpace = "right_space"
)

// Formatter renders projections into a delimited text blob.
type Formatter struct {
	symbol   string
	decimals int32
	position string
}

// NewFormatter builds a Formatter using the configured currency presentation.
func NewFormatter(cfg config.ExportConfig) Formatter {
	decimals := cfg.CurrencyDecimals
	if decimals < 0 {
		decimals = 0
	}
	return Formatter{
		symbol:   cfg.CurrencySymbol,
		decimals: decimals,
		position: strings.ToLower(strings.TrimSpace(cfg.CurrencyPosition)),
	}
}

// Format joins one fragment per projection with the delimiter's separator.
func (f Formatter) Format(products []Projection, format enums.ExportFormat, delimiter enums.Delimiter) string {
	if len(products) == 0 {
		return ""
	}
	fragments := make([]string, 0, len(products))
	for _, p := range products {
		fragments = append(fragments, f.fragment(p, format))
	}
	return strings.Join(fragments, delimiter.Separator())
}

func (f Formatter) fragment(p Projection, format enums.ExportFormat) string {
	switch format {
	case enums.ExportFormatSKUTitle:
		return p.SKU + " - " + p.Name
	case enums.ExportFormatSKUPrice:
		return p.SKU + " - " + f.price(p.Price)
	case enums.ExportFormatSKUStock:
		return p.SKU + " - " + stock(p)
	case enums.ExportFormatSKUAll:
		return strings.Join([]string{p.SKU, p.Name, f.price(p.Price), stock(p)}, " | ")
	default:
		return p.SKU
	}
}

// price renders a plain-text amount. Absent prices and any zero amount, "0.00" included,
// render as not available.
func (f Formatter) price(value decimal.NullDecimal) string {
	if !value.Valid || value.Decimal.IsZero() {
		return notAvailable
	}
	amount := value.Decimal.StringFixed(f.decimals)
	switch f.position {
	case CurrencyRight:
		return amount + f.symbol
	case CurrencyLeftSpace:
		return f.symbol + " " + amount
	case CurrencyRightSpace:
		return amount + " " + f.symbol
	default:
		return f.symbol + amount
	}
}

func stock(p Projection) string {
	if p.StockQuantity != nil {
		return strconv.Itoa(*p.StockQuantity)
	}
	return p.StockStatus.String()
}
