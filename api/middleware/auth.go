package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/angelmondragon/skuexport/api/responses"
	pkgAuth "github.com/angelmondragon/skuexport/pkg/auth"
	"github.com/angelmondragon/skuexport/pkg/auth/session"
	"github.com/angelmondragon/skuexport/pkg/config"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
	"github.com/angelmondragon/skuexport/pkg/logger"
)

const msgUnauthorized = "Unauthorized access."

// Auth validates a bearer token and seeds the request context with the claims.
// A nil verifier skips the server-side session lookup.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(r.Context(), logg, w, errors.New("missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				unauthorized(r.Context(), logg, w, err)
				return
			}

			if claims.ID == "" {
				unauthorized(r.Context(), logg, w, errors.New("missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					unauthorized(r.Context(), logg, w, errors.New("session unavailable"))
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithRole(ctx, string(claims.Role))
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				ctx = logg.WithActorRole(ctx, string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = raw[7:]
	}
	return strings.TrimSpace(raw)
}

func unauthorized(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, cause error) {
	responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, cause, msgUnauthorized))
}
