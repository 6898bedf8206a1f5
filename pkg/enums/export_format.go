package enums

// ExportFormat selects the per-product line layout.
type ExportFormat string

const (
	ExportFormatSKU      ExportFormat = "sku"
	ExportFormatSKUTitle ExportFormat = "sku_title"
	ExportFormatSKUPrice ExportFormat = "sku_price"
	ExportFormatSKUStock ExportFormat = "sku_stock"
	ExportFormatSKUAll   ExportFormat = "sku_all"
)

var validExportFormats = []ExportFormat{
	ExportFormatSKU,
	ExportFormatSKUTitle,
	ExportFormatSKUPrice,
	ExportFormatSKUStock,
	ExportFormatSKUAll,
}

// String implements fmt.Stringer.
func (f ExportFormat) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ExportFormat.
func (f ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseExportFormatOrDefault returns the matching format, or sku for unknown input.
func ParseExportFormatOrDefault(value string) ExportFormat {
	for _, candidate := range validExportFormats {
		if string(candidate) == value {
			return candidate
		}
	}
	return ExportFormatSKU
}

// Delimiter names the separator placed between exported fragments.
type Delimiter string

const (
	DelimiterComma     Delimiter = "comma"
	DelimiterSemicolon Delimiter = "semicolon"
	DelimiterTab       Delimiter = "tab"
	DelimiterNewline   Delimiter = "newline"
)

var delimiterSeparators = map[Delimiter]string{
	DelimiterComma:     ", ",
	DelimiterSemicolon: "; ",
	DelimiterTab:       "\t",
	DelimiterNewline:   "\n",
}

// String implements fmt.Stringer.
func (d Delimiter) String() string {
	return string(d)
}

// IsValid reports whether the value is a known Delimiter.
func (d Delimiter) IsValid() bool {
	_, ok := delimiterSeparators[d]
	return ok
}

// Separator returns the literal text for the delimiter, falling back to the comma separator.
func (d Delimiter) Separator() string {
	if sep, ok := delimiterSeparators[d]; ok {
		return sep
	}
	return delimiterSeparators[DelimiterComma]
}

// ParseDelimiterOrDefault returns the matching delimiter, or comma for unknown input.
func ParseDelimiterOrDefault(value string) Delimiter {
	d := Delimiter(value)
	if d.IsValid() {
		return d
	}
	return DelimiterComma
}
