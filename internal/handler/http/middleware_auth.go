package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/utils"
	"github.com/nvalera/storefront-api/models"
)

// authenticate performs full token verification for a single request:
// header extraction, signature/issuer/expiry validation, and identity
// extraction.
//
// Failure signals:
//   - 401 (default) when no token is presented at all.
//   - 401-token when the token is malformed, expired, or fails
//     signature verification.
//
// Every authorization gate calls authenticate itself rather than trusting
// an identity attached by an earlier middleware, so a stale identity can
// never be reused within a request chain.
func (h *Handler) authenticate(r *http.Request) (models.Identity, error) {
	log := logger.FromRequest(r)

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		log.Error().Msg("empty Authorization header")
		return models.Identity{}, fault.ErrUnauthorized
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		log.Err(err).Msg("invalid Authorization header")
		return models.Identity{}, fault.ErrUnauthorized
	}

	identity, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
	if err != nil {
		log.Err(err).Msg("token verification failed")
		return models.Identity{}, err
	}

	return identity, nil
}

// verifyIdentity is the base authentication middleware: it verifies the
// bearer token and — on success — stores the caller identity in the
// request context before delegating to the next handler.
func (h *Handler) verifyIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.authenticate(r)
		if err != nil {
			h.renderFault(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}

// requireAdmin is the role-only authorization gate: the request passes
// only when the verified token carries the admin claim.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.authenticate(r)
		if err != nil {
			h.renderFault(w, r, err)
			return
		}

		if !identity.IsAdmin {
			logger.FromRequest(r).Error().Str("subject", identity.SubjectID).Msg("admin role required")
			h.renderFault(w, r, fault.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
	})
}

// requireAdminOrOwner is the role-or-ownership gate: the request passes
// when the verified token carries the admin claim OR its subject matches
// the resource owner identified by the named path parameter.
func (h *Handler) requireAdminOrOwner(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := h.authenticate(r)
			if err != nil {
				h.renderFault(w, r, err)
				return
			}

			ownerID := chi.URLParam(r, param)
			if !identity.IsAdmin && identity.SubjectID != ownerID {
				logger.FromRequest(r).Error().
					Str("subject", identity.SubjectID).
					Str("owner", ownerID).
					Msg("caller is neither admin nor resource owner")
				h.renderFault(w, r, fault.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
		})
	}
}
