package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code written by the handler, and the
// request context as enriched by inner middleware so the log line can carry
// the authenticated identity.
type statusRecorder struct {
	http.ResponseWriter
	status int
	ctx    context.Context
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) SetContext(ctx context.Context) {
	r.ctx = ctx
}

type contextSetter interface {
	SetContext(context.Context)
}

// RequestLogger returns middleware that logs one line per request: method,
// path, status, duration, and the authenticated user when present.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK, ctx: r.Context()}
			next.ServeHTTP(rec, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if userID, ok := GetUserID(rec.ctx); ok {
				attrs = append(attrs, "user_id", userID)
			}
			logger.Info("http request", attrs...)
		})
	}
}
