package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"booking-audit/backend/internal/security"
)

const bearerPrefix = "bearer "

// RequireAuth returns middleware that validates the Bearer (access) token from
// the Authorization header and sets user_id and org_id in the request context.
// Requests without a valid token get 401 and never reach the handler.
func RequireAuth(tokens *security.TokenProvider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r.Header.Get("Authorization"))
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED")
				return
			}
			userID, orgID, err := tokens.ValidateAccess(token)
			if err != nil {
				logger.Warn("access token rejected", "path", r.URL.Path, "error", err)
				WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED")
				return
			}
			ctx := WithIdentity(r.Context(), userID, orgID)
			if setter, ok := w.(contextSetter); ok {
				setter.SetContext(ctx)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer returns the Bearer token from the header value, or "" if
// missing or malformed.
func extractBearer(header string) string {
	v := strings.TrimSpace(header)
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
