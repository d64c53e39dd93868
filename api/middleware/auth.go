package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kestrelgear/dealerdesk-backend/api/responses"
	"github.com/kestrelgear/dealerdesk-backend/internal/orders"
	pkgAuth "github.com/kestrelgear/dealerdesk-backend/pkg/auth"
	"github.com/kestrelgear/dealerdesk-backend/pkg/config"
	pkgerrors "github.com/kestrelgear/dealerdesk-backend/pkg/errors"
	"github.com/kestrelgear/dealerdesk-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// caller identity built from its claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthenticated, err, "invalid token"))
				return
			}

			subject, err := uuid.Parse(claims.Subject)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "invalid token subject"))
				return
			}

			identity := orders.Identity{
				Subject:   subject,
				AccountID: claims.AccountID,
				TierID:    claims.TierID,
				Currency:  claims.Currency,
				Role:      claims.Role,
			}
			ctx := WithIdentity(r.Context(), identity)

			if logg != nil {
				fields := map[string]any{
					"subject":    subject.String(),
					"actor_role": string(claims.Role),
				}
				if claims.AccountID != nil {
					fields["account_id"] = claims.AccountID.String()
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
