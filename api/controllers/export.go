package controllers

import (
	"net/http"

	"github.com/angelmondragon/skuexport/api/responses"
	"github.com/angelmondragon/skuexport/api/validators"
	"github.com/angelmondragon/skuexport/internal/exporter"
	"github.com/angelmondragon/skuexport/pkg/enums"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
	"github.com/angelmondragon/skuexport/pkg/logger"
)

type exportRequest struct {
	FilterType        string                 `json:"filter_type" validate:"omitempty,max=32"`
	FilterValue       validators.FilterValue `json:"filter_value"`
	IncludeVariations bool                   `json:"include_variations"`
	ExportFormat      string                 `json:"export_format" validate:"omitempty,max=32"`
	Delimiter         string                 `json:"delimiter" validate:"omitempty,max=32"`
}

func (r exportRequest) toRequest() exporter.Request {
	filterType := validators.SanitizeString(r.FilterType, 32)
	if filterType == "" {
		filterType = enums.FilterTypeAll.String()
	}
	return exporter.Request{
		FilterType:        filterType,
		FilterValues:      r.FilterValue.Values(),
		IncludeVariations: r.IncludeVariations,
		Format:            enums.ParseExportFormatOrDefault(validators.SanitizeString(r.ExportFormat, 32)),
		Delimiter:         enums.ParseDelimiterOrDefault(validators.SanitizeString(r.Delimiter, 32)),
	}
}

type exportResponse struct {
	SKUs    string `json:"skus"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// ExportSKUs renders the SKUs of every product matching the posted filter.
func ExportSKUs(svc exporter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export service unavailable"))
			return
		}

		var body exportRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Export(r.Context(), body.toRequest())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, exportResponse{
			SKUs:    result.SKUs,
			Count:   result.Count,
			Message: result.Message,
		})
	}
}
