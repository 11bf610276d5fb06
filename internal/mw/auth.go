package mw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"elstore/internal/service"
)

type contextKey string

const AdminCtxKey contextKey = "admin_subject"

// AdminAuth gates a route on a valid, unexpired admin bearer token. The
// handler behind it never runs on an unauthorized request.
func AdminAuth(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "not authenticated", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := authSvc.VerifyToken(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, service.ErrForbidden):
					http.Error(w, "forbidden", http.StatusForbidden)
				case errors.Is(err, service.ErrTokenExpired):
					http.Error(w, "token expired", http.StatusUnauthorized)
				default:
					http.Error(w, "invalid token", http.StatusUnauthorized)
				}
				return
			}

			ctx := context.WithValue(r.Context(), AdminCtxKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
