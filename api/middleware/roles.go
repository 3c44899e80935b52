package middleware

import (
	"net/http"

	"github.com/angelmondragon/talentconnect-backend/api/responses"
	pkgAuth "github.com/angelmondragon/talentconnect-backend/pkg/auth"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
)

// RequireFreelancer admits only tokens carrying the freelancer role.
func RequireFreelancer(logg *logger.Logger) func(http.Handler) http.Handler {
	return requireClaim(logg, "freelancer role required", func(c *pkgAuth.AccessTokenClaims) bool {
		return c.IsFreelancer
	})
}

// RequireEquipmentOwner admits only tokens carrying the equipment owner role.
func RequireEquipmentOwner(logg *logger.Logger) func(http.Handler) http.Handler {
	return requireClaim(logg, "equipment owner role required", func(c *pkgAuth.AccessTokenClaims) bool {
		return c.IsEquipmentOwner
	})
}

func requireClaim(logg *logger.Logger, message string, allowed func(*pkgAuth.AccessTokenClaims) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "access token required"))
				return
			}
			if !allowed(claims) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
