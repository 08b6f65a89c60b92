package httpapi

import (
	"context"
	"net/http"
	"strings"

	"belakoo-backend-go/internal/services"
)

type contextKey string

const ctxIdentity contextKey = "identity"

func WithAuth(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			identity, err := tokenService.ParseAccessToken(tokenStr)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			ctx := context.WithValue(r.Context(), ctxIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentIdentity(r *http.Request) (services.Identity, bool) {
	identity, ok := r.Context().Value(ctxIdentity).(services.Identity)
	return identity, ok
}

func CurrentUserID(r *http.Request) string {
	identity, _ := CurrentIdentity(r)
	return identity.UserID
}

func RequireRole(role string) func(http.Handler) http.Handler {
	role = strings.ToUpper(role)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := CurrentIdentity(r)
			if !ok || strings.ToUpper(identity.Role) != role {
				WriteError(w, http.StatusForbidden, "Not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
