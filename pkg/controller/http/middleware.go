package http

import (
	"net/http"
	"strings"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model/auth"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
)

// userMiddleware resolves the request user from a bearer token. Requests
// without a token proceed as the local guest; an invalid token is rejected
// rather than silently downgraded.
func userMiddleware(authUC *usecase.AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				ctx := auth.ContextWithUser(r.Context(), model.NewGuestUser())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			user, err := authUC.VerifyToken(r.Context(), token)
			if err != nil {
				respondError(w, r, err)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
