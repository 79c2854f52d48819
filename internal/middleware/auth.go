package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carhive-dev/carhive/internal/jwt"
	"github.com/carhive-dev/carhive/internal/web"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that rejects requests without a valid
// bearer token. Missing header and failed verification deliberately
// produce different messages but the same 401 status; verification
// failures are never broken down further.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || tokenString == "" {
				web.WriteMessage(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := a.jwtService.DecodeToken(tokenString)
			if err != nil {
				web.WriteMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated identity from the context.
func UserFromContext(r *http.Request) *jwt.Claims {
	claims, ok := r.Context().Value(UserClaimsKey).(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}
