package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/amity-dating/amity/internal/app"
	"github.com/amity-dating/amity/internal/db"
	svcErr "github.com/amity-dating/amity/internal/errors"
	"github.com/amity-dating/amity/internal/repository"
)

type contextKey string

const viewerKey contextKey = "viewer"

// RequireUser authenticates the bearer token and resolves the calling user.
// The loaded user is stored in the request context for handlers downstream.
func RequireUser(appCtx *app.AppContext) func(http.Handler) http.Handler {
	repo := repository.NewUserRepository(appCtx.DB)
	secret := []byte(appCtx.Config.Auth.JWTSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				svcErr.WriteUnauthorized(w, "authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				svcErr.WriteUnauthorized(w, "invalid authorization header format")
				return
			}

			subject, err := SubjectFromToken(parts[1], secret)
			if err != nil {
				svcErr.WriteUnauthorized(w, "invalid token")
				return
			}

			user, err := repo.FindByEmail(r.Context(), subject)
			if err != nil {
				svcErr.WriteError(w, err)
				return
			}
			if user == nil || user.Disabled {
				svcErr.WriteUnauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), viewerKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ViewerFromContext extracts the authenticated user placed by RequireUser.
func ViewerFromContext(ctx context.Context) *db.User {
	user, ok := ctx.Value(viewerKey).(*db.User)
	if !ok {
		return nil
	}
	return user
}
