package auth

import (
	"net/http"
	"strings"

	"github.com/bramantyo/ombot-backend/internal/identity"
)

// Middleware verifies the bearer token on every request except the listed
// public paths and attaches the principal to the request context. The server
// never trusts an unverified claim; the dashboard's unverified decode is a
// display convenience only.
func Middleware(service Service, public ...string) func(http.Handler) http.Handler {
	publicSet := make(map[string]struct{}, len(public))
	for _, p := range public {
		publicSet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicSet[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, err := bearerToken(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := service.Verify(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := identity.WithIdentity(r.Context(), identity.Identity{
				UserID:  claims.UserID,
				Role:    claims.Role,
				StoreID: claims.StoreID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidCredentials
	}
	return parts[1], nil
}
