package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PeteLJ/PetHeaven/internal/auth"
	"github.com/PeteLJ/PetHeaven/pkg/requestcontext"
)

// PrincipalValidator turns a bearer token back into a principal.
type PrincipalValidator interface {
	ValidateToken(tokenString string) (auth.Principal, error)
}

type contextKeyPrincipal struct{}

// ContextKeyPrincipal is exported for handler tests that build contexts
// directly.
var ContextKeyPrincipal = contextKeyPrincipal{}

// GetPrincipal retrieves the authenticated principal from the context,
// defaulting to anonymous.
func GetPrincipal(ctx context.Context) auth.Principal {
	if p, ok := ctx.Value(ContextKeyPrincipal).(auth.Principal); ok {
		return p
	}
	return auth.Anonymous{}
}

// WithPrincipal injects a principal into the context, for tests that skip the
// token round trip.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, ContextKeyPrincipal, p)
}

func writeAuthError(w http.ResponseWriter, status int, desc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + desc + `"}`))
}

// RequireAuth rejects requests without a valid bearer token and stores the
// reconstructed principal in the context.
func RequireAuth(validator PrincipalValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeAuthError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			principal, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
		})
	}
}

// RequireStaff gates a subtree to the staff principal. Must run after
// RequireAuth.
func RequireStaff(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !auth.IsStaff(GetPrincipal(ctx)) {
				logger.WarnContext(ctx, "forbidden - staff role required",
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Staff role required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
