package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/coach-lambda/internal/config"
)

type ctxKey string

const claimsKey ctxKey = "user_claims"

var ErrNoUserInContext = errors.New("no user in context")

// UserScope attaches the owning user to every request. A bearer token, when
// present, must be valid; otherwise the request runs as defaultUserID.
func UserScope(defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := config.WithContext(r.Context())

			claims := &Claims{UserID: defaultUserID, Role: "owner"}
			if header := r.Header.Get("Authorization"); header != "" {
				tokenStr := strings.TrimPrefix(header, "Bearer ")
				if tokenStr == header {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				parsed, err := ValidateJWT(tokenStr)
				if err != nil {
					log.WithError(err).Warn("Rejected bearer token")
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				claims = parsed
			}

			if _, err := uuid.Parse(claims.UserID); err != nil {
				log.WithField("user_id", claims.UserID).Warn("User id is not a UUID")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = config.ContextWithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoUserInContext
	}
	return claims, nil
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.UserID)
}
