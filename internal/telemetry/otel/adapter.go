package otel

import (
	"context"
	"log"
	"strconv"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"booking-audit/backend/internal/telemetry"
)

// NewEventEmitter returns an EventEmitter that sends decision events as OTel
// log records via the given LoggerProvider. If provider is nil, returns a
// no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) telemetry.EventEmitter {
	if provider == nil {
		return noopEmitter{}
	}
	return &otelEmitter{logger: provider.Logger("booking-audit.access")}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *telemetry.DecisionEvent) error { return nil }

// recordEmitter is the subset of otellog.Logger the adapter needs; narrowed so
// tests can capture records.
type recordEmitter interface {
	Emit(ctx context.Context, rec otellog.Record)
}

func newEmitterWithLogger(logger recordEmitter) *otelEmitter {
	return &otelEmitter{logger: logger}
}

type otelEmitter struct {
	logger recordEmitter
}

// Emit converts the decision event to an OTel log record and emits it.
func (e *otelEmitter) Emit(ctx context.Context, event *telemetry.DecisionEvent) error {
	if event == nil {
		return nil
	}
	rec := otellog.Record{}
	if !event.CreatedAt.IsZero() {
		rec.SetTimestamp(event.CreatedAt)
	} else {
		rec.SetTimestamp(time.Now().UTC())
	}
	rec.SetBody(otellog.StringValue("audit_access_decision"))
	rec.AddAttributes(otellog.String("booking_uid", event.BookingUID))
	rec.AddAttributes(otellog.String("user_id", strconv.FormatInt(event.UserID, 10)))
	if event.OrgID != nil {
		rec.AddAttributes(otellog.String("org_id", strconv.FormatInt(*event.OrgID, 10)))
	}
	if event.Outcome != "" {
		rec.AddAttributes(otellog.String("outcome", event.Outcome))
	}
	e.logger.Emit(ctx, rec)
	return nil
}

// EmitAsync runs Emit in a goroutine with a short timeout so the request is
// not blocked. Logs errors.
func EmitAsync(emitter telemetry.EventEmitter, event *telemetry.DecisionEvent) {
	if emitter == nil || event == nil {
		return
	}
	go func() {
		emitCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := emitter.Emit(emitCtx, event); err != nil {
			log.Printf("telemetry: async emit failed: %v", err)
		}
	}()
}
