package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/metrics"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// UserGetter loads the subject of a token.
type UserGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// AuthMiddleware returns a middleware that authenticates the bearer token and
// attaches the token's user to the request context. Every failure is reported
// to the client as the same 401.
func AuthMiddleware(tokener Tokener, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			reject := func(reason string, err error) {
				logger.Log.Infow("authorization failed",
					"request_id", RequestIDFromContext(ctx),
					"reason", reason,
					"err", err,
				)
				metrics.RecordAuth("authenticate", reason)
				response.Fail(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Message)
			}

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				reject("missing_token", err)
				return
			}

			userID, err := tokener.GetUserID(ctx, tokenString)
			if err != nil {
				reject("invalid_token", err)
				return
			}

			user, err := users.GetByID(ctx, userID)
			if err != nil {
				metrics.RecordAuth("authenticate", "lookup_failed")
				response.NewErrorWriter(false).Write(w, r, err)
				return
			}
			if user == nil {
				reject("unknown_subject", nil)
				return
			}
			if !user.IsActive {
				reject("inactive_subject", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}
