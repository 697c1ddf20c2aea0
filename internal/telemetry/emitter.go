// Package telemetry defines the access-decision event stream emitted by the
// audit service for observability backends.
package telemetry

import (
	"context"
	"time"
)

// DecisionEvent records one outcome of the audit access check. Outcome is
// "allowed", a denial reason code, or "infrastructure_error".
type DecisionEvent struct {
	BookingUID string
	UserID     int64
	OrgID      *int64
	Outcome    string
	CreatedAt  time.Time
}

// EventEmitter sends a decision event to a telemetry backend. Emit is
// best-effort: callers log failures and never fail the decision over them.
type EventEmitter interface {
	Emit(ctx context.Context, event *DecisionEvent) error
}
