package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/skuexport/api/responses"
	"github.com/angelmondragon/skuexport/internal/options"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
	"github.com/angelmondragon/skuexport/pkg/logger"
)

type optionsResponse struct {
	Options []options.Option `json:"options"`
}

func ListCategoryOptions(svc options.Service, logg *logger.Logger) http.HandlerFunc {
	return listOptions(svc, logg, func(ctx context.Context) ([]options.Option, error) {
		return svc.ListCategories(ctx)
	})
}

func ListTagOptions(svc options.Service, logg *logger.Logger) http.HandlerFunc {
	return listOptions(svc, logg, func(ctx context.Context) ([]options.Option, error) {
		return svc.ListTags(ctx)
	})
}

func ListAttributeOptions(svc options.Service, logg *logger.Logger) http.HandlerFunc {
	return listOptions(svc, logg, func(ctx context.Context) ([]options.Option, error) {
		return svc.ListAttributeValues(ctx)
	})
}

func listOptions(svc options.Service, logg *logger.Logger, list func(context.Context) ([]options.Option, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "options service unavailable"))
			return
		}
		opts, err := list(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if opts == nil {
			opts = []options.Option{}
		}
		responses.WriteSuccess(w, optionsResponse{Options: opts})
	}
}
