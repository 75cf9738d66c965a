package middleware

import (
	"net/http"
	"strings"

	"github.com/rpattn/clubsync/internal/auth"
	"github.com/rpattn/clubsync/pkg/apierror"
)

// AuthMiddleware resolves the bearer token to a user id and stores it in the
// request context. Requests without a valid token are rejected before any
// handler runs.
func AuthMiddleware(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" || token == header {
				apierror.Write(w, apierror.Unauthorized("missing bearer token"))
				return
			}

			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				apierror.Write(w, apierror.Unauthorized("invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(r.Context(), userID)))
		})
	}
}
