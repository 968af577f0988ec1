package http

import (
	"net/http"

	"github.com/MKhiriev/go-repa/internal/auth"
	"github.com/MKhiriev/go-repa/internal/logger"
	"github.com/MKhiriev/go-repa/internal/service"
	"github.com/MKhiriev/go-repa/internal/utils"
)

// auth authenticates the request with a bearer access token and stores the
// resulting [auth.Principal] in the request context.
//
// Missing, malformed, expired and non-access tokens yield 401. A token
// minted for an account that was inactive at the time yields 403.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("no bearer token")
			h.metrics.IncTokenRejection(service.TokenErrorReason(service.ErrTokenMissing))
			writeError(w, r, service.ErrTokenMissing)
			return
		}

		principal, err := h.resolver.ResolveAccess(token)
		if err != nil {
			serr := service.TokenError(err)
			log.Debug().Err(err).Msg("token rejected")
			h.metrics.IncTokenRejection(service.TokenErrorReason(serr))
			writeError(w, r, serr)
			return
		}

		if principal.IsActive != nil && !*principal.IsActive {
			writeError(w, r, service.ErrAccountInactive)
			return
		}

		ctx := auth.NewContext(r.Context(), principal)
		setRequestUser(ctx, principal.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRoles lets the request through when the principal holds at least
// one of roles.
func (h *Handler) requireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.FromContext(r.Context())
			if !ok {
				writeError(w, r, service.ErrTokenMissing)
				return
			}

			if !auth.HasRole(principal, roles...) {
				h.metrics.IncRBACDenial()
				logger.FromRequest(r).Info().
					Str("user_id", principal.ID).
					Strs("required", roles).
					Strs("held", principal.RoleNames()).
					Msg("access denied")
				writeError(w, r, service.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// principalFrom returns the principal set by [Handler.auth]. Handlers behind
// the auth middleware can rely on it being present.
func principalFrom(r *http.Request) auth.Principal {
	p, _ := auth.FromContext(r.Context())
	return p
}
