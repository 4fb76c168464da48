package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"devconnector/schemas"
)

type contextKey string

const principalContextKey contextKey = "principal"

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// PrincipalMiddleware verifies the bearer token and injects the caller's
// user id into the request context. Token issuance happens elsewhere; this
// only extracts an already-authenticated principal.
func PrincipalMiddleware(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(rw, http.StatusUnauthorized, "not_authenticated", "Authorization token required.")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(rw, http.StatusUnauthorized, "not_authenticated", "Authorization header must be: Bearer <token>.")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid || claims.UserID == "" {
				writeError(rw, http.StatusUnauthorized, "not_authenticated", "Token validation failed.")
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey, schemas.UserId(claims.UserID))
			next.ServeHTTP(rw, r.WithContext(ctx))
		})
	}
}

func PrincipalFromRequest(r *http.Request) (schemas.UserId, bool) {
	principal, ok := r.Context().Value(principalContextKey).(schemas.UserId)
	return principal, ok
}
