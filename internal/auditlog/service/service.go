// Package service exposes the read surface for booking audit logs. Every read
// runs the access decision first; entries are only returned on allow.
package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"booking-audit/backend/internal/auditlog/access"
	"booking-audit/backend/internal/auditlog/domain"
	auditrepo "booking-audit/backend/internal/auditlog/repository"
	"booking-audit/backend/internal/telemetry"
	oteltelemetry "booking-audit/backend/internal/telemetry/otel"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// OutcomeAllowed and OutcomeInfrastructureError label decision events that are
// not policy denials; denials are labeled with their reason code.
const (
	OutcomeAllowed             = "allowed"
	OutcomeInfrastructureError = "infrastructure_error"
)

// AccessChecker decides whether a user may view audit logs for a booking.
type AccessChecker interface {
	Check(ctx context.Context, bookingUID string, userID int64, organizationID *int64) error
}

// Service lists audit-log entries for callers that pass the access check.
type Service struct {
	access    AccessChecker
	entries   auditrepo.Repository
	emitter   telemetry.EventEmitter
	decisions metric.Int64Counter
}

// New wires the service. emitter may be nil to disable decision events;
// meterProvider may be nil to disable the decision counter.
func New(checker AccessChecker, entries auditrepo.Repository, emitter telemetry.EventEmitter, meterProvider metric.MeterProvider) (*Service, error) {
	if meterProvider == nil {
		meterProvider = noop.NewMeterProvider()
	}
	meter := meterProvider.Meter("booking-audit.auditlog")
	decisions, err := meter.Int64Counter(
		"audit_access_decisions_total",
		metric.WithDescription("Audit access decisions by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("create decision counter: %w", err)
	}
	return &Service{
		access:    checker,
		entries:   entries,
		emitter:   emitter,
		decisions: decisions,
	}, nil
}

// ListForBooking returns audit-log entries for bookingUID, newest first, after
// checking that userID may view them under organizationID scope. Denials and
// failures come back as the access check's errors unchanged.
func (s *Service) ListForBooking(ctx context.Context, bookingUID string, userID int64, organizationID *int64, limit, offset int32) ([]*domain.Entry, error) {
	err := s.access.Check(ctx, bookingUID, userID, organizationID)
	s.recordDecision(ctx, bookingUID, userID, organizationID, err)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.entries.ListByBookingUID(ctx, bookingUID, limit, offset)
}

func (s *Service) recordDecision(ctx context.Context, bookingUID string, userID int64, organizationID *int64, err error) {
	outcome := OutcomeAllowed
	if err != nil {
		if reason, ok := access.Denied(err); ok {
			outcome = string(reason)
		} else {
			outcome = OutcomeInfrastructureError
		}
	}
	s.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	oteltelemetry.EmitAsync(s.emitter, &telemetry.DecisionEvent{
		BookingUID: bookingUID,
		UserID:     userID,
		OrgID:      organizationID,
		Outcome:    outcome,
		CreatedAt:  time.Now().UTC(),
	})
}
