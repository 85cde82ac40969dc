package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID  ctxKey = "userID"
	CtxIsAdmin ctxKey = "isAdmin"
)

// Middleware authenticates requests from a Bearer token. With
// allowAnonymous set (ALLOW_ANONYMOUS_FALLBACK=true), requests without a
// token pass through carrying no identity and downstream handlers fall back
// to the default actor; with it unset, they are rejected. A present but
// invalid token is always rejected.
func Middleware(allowAnonymous bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if h == "" {
				if allowAnonymous {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "malformed Authorization header", http.StatusUnauthorized)
				return
			}
			claims, err := ParseAndValidate(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
			ctx = context.WithValue(ctx, CtxIsAdmin, claims.IsAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards admin-only routes. It must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, _ := r.Context().Value(CtxIsAdmin).(bool); !ok {
			http.Error(w, "admin only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
