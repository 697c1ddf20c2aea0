// Package server assembles the HTTP handler: routes, auth, request logging,
// and OpenTelemetry instrumentation.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	audithandler "booking-audit/backend/internal/auditlog/handler"
	"booking-audit/backend/internal/security"
	"booking-audit/backend/internal/server/middleware"
)

const healthCheckTimeout = 2 * time.Second

// Deps holds the dependencies of the HTTP surface.
type Deps struct {
	Logger *slog.Logger
	Tokens *security.TokenProvider
	Audit  *audithandler.Server
	// DBPing checks database readiness for /healthz. If nil, the DB check is skipped.
	DBPing func(context.Context) error
}

// NewHandler wires routes and middleware into a single http.Handler.
// All /v1 routes require a valid Bearer access token; /healthz does not.
func NewHandler(deps Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealthz(deps.DBPing))

	requireAuth := middleware.RequireAuth(deps.Tokens, deps.Logger)
	mux.Handle("GET /v1/bookings/{uid}/audit", requireAuth(http.HandlerFunc(deps.Audit.ListAuditLogs)))

	var handler http.Handler = mux
	handler = middleware.RequestLogger(deps.Logger)(handler)
	return otelhttp.NewHandler(handler, "booking-audit-api")
}

func handleHealthz(dbPing func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbPing != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			defer cancel()
			if err := dbPing(ctx); err != nil {
				middleware.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
