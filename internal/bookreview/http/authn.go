package http

import (
	"net/http"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/session"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
	"github.com/aussiebroadwan/bookreview/pkg/jwtx"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"
)

// authenticate admits requests carrying a valid token of kind and stores its
// claims on the request context.
func authenticate(gate *session.Gate, kind jwtx.Kind) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := gate.Authenticate(r.Context(), r.Header.Get("Authorization"), kind)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := httpx.ContextWithClaims(r.Context(), claims)
			ctx = slogx.With(ctx, "user_id", claims.User.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requireAccess(gate *session.Gate) httpx.Middleware {
	return authenticate(gate, jwtx.KindAccess)
}

func requireRefresh(gate *session.Gate) httpx.Middleware {
	return authenticate(gate, jwtx.KindRefresh)
}

// requireRole must run after requireAccess.
func requireRole(allowed ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := httpx.ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, r, session.ErrMissingCredentials)
				return
			}
			if err := session.RequireRole(claims, allowed...); err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// actor returns the caller established by requireAccess.
func actor(r *http.Request) service.Actor {
	claims, _ := httpx.ClaimsFromContext(r.Context())
	return service.Actor{ID: claims.User.UID, Role: domain.Role(claims.User.Role)}
}

func claimsOf(r *http.Request) jwtx.Claims {
	claims, _ := httpx.ClaimsFromContext(r.Context())
	return claims
}
