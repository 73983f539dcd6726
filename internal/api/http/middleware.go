package http

import (
	"context"
	"net/http"
	"strings"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware validates the bearer token and injects the actor identity
// into the request context. Downstream handlers never see credentials,
// only the {id, isAdmin} pair the gate and bulk engine consume.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		actor := domain.Actor{ID: claims.UserID, IsAdmin: claims.IsAdmin}
		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

// RequireAdmin gates a route on the admin role before the handler runs.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.IsAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext extracts the authenticated actor set by AuthMiddleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
