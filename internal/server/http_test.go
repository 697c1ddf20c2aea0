package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"booking-audit/backend/internal/auditlog/access"
	"booking-audit/backend/internal/auditlog/domain"
	audithandler "booking-audit/backend/internal/auditlog/handler"
	"booking-audit/backend/internal/auditlog/service"
	"booking-audit/backend/internal/security"
)

type fakeChecker struct {
	err error
	// captured arguments of the last call
	gotUID    string
	gotUserID int64
	gotOrgID  *int64
}

func (f *fakeChecker) Check(ctx context.Context, bookingUID string, userID int64, organizationID *int64) error {
	f.gotUID = bookingUID
	f.gotUserID = userID
	f.gotOrgID = organizationID
	return f.err
}

type fakeEntries struct {
	entries []*domain.Entry
}

func (f *fakeEntries) ListByBookingUID(ctx context.Context, bookingUID string, limit, offset int32) ([]*domain.Entry, error) {
	return f.entries, nil
}

func (f *fakeEntries) Create(ctx context.Context, e *domain.Entry) error { return nil }

func newTestHandler(t *testing.T, checker *fakeChecker, dbPing func(context.Context) error) (http.Handler, *security.TokenProvider) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}

	svc, err := service.New(checker, &fakeEntries{entries: []*domain.Entry{{ID: "e1", BookingUID: "abc123"}}}, nil, nil)
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}

	handler := NewHandler(Deps{
		Logger: logger,
		Tokens: tokens,
		Audit:  audithandler.NewServer(svc, logger),
		DBPing: dbPing,
	})
	return handler, tokens
}

func TestHealthz_OK(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeChecker{}, func(context.Context) error { return nil })

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestHealthz_DBDown(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeChecker{}, func(context.Context) error { return errors.New("down") })

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestAuditRoute_RequiresToken(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeChecker{}, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/bookings/abc123/audit", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuditRoute_RejectsGarbageToken(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeChecker{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/abc123/audit", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuditRoute_PassesIdentityFromToken(t *testing.T) {
	checker := &fakeChecker{}
	handler, tokens := newTestHandler(t, checker, nil)

	orgID := int64(7)
	token, _, _, err := tokens.IssueAccess(42, &orgID)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/abc123/audit", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if checker.gotUID != "abc123" || checker.gotUserID != 42 {
		t.Errorf("checker called with uid=%q userID=%d", checker.gotUID, checker.gotUserID)
	}
	if checker.gotOrgID == nil || *checker.gotOrgID != 7 {
		t.Errorf("checker called with orgID=%v, want 7", checker.gotOrgID)
	}
}

func TestAuditRoute_TokenWithoutOrgScopeIsDenied(t *testing.T) {
	// A token with no org claim reaches the decision with nil scope, which
	// the checker refuses.
	checker := &fakeChecker{err: &access.DeniedError{Reason: access.ReasonOrganizationIDRequired}}
	handler, tokens := newTestHandler(t, checker, nil)

	token, _, _, err := tokens.IssueAccess(42, nil)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/abc123/audit", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if checker.gotOrgID != nil {
		t.Errorf("orgID = %v, want nil", checker.gotOrgID)
	}

	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Error.Code != string(access.ReasonOrganizationIDRequired) {
		t.Errorf("error code = %q", payload.Error.Code)
	}
}
