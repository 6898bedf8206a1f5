package middleware

import (
	"net/http"

	"github.com/angelmondragon/skuexport/api/responses"
	"github.com/angelmondragon/skuexport/pkg/enums"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
	"github.com/angelmondragon/skuexport/pkg/logger"
)

// RequireCatalogManager admits callers whose role may read catalog exports.
func RequireCatalogManager(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := enums.ParseMemberRole(RoleFromContext(r.Context()))
			if err != nil || !role.CanManageCatalog() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, msgUnauthorized))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
