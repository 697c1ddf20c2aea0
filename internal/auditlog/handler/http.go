// Package handler exposes booking audit logs over HTTP JSON.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"booking-audit/backend/internal/auditlog/access"
	"booking-audit/backend/internal/auditlog/domain"
	"booking-audit/backend/internal/auditlog/service"
	"booking-audit/backend/internal/server/middleware"
)

// Server handles audit-log HTTP requests.
type Server struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewServer returns a Server backed by svc.
func NewServer(svc *service.Service, logger *slog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

type entryResponse struct {
	ID          string    `json:"id"`
	BookingUID  string    `json:"booking_uid"`
	ActorUserID int64     `json:"actor_user_id"`
	Action      string    `json:"action"`
	Resource    string    `json:"resource"`
	IP          string    `json:"ip,omitempty"`
	Metadata    string    `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type listResponse struct {
	Entries []entryResponse `json:"entries"`
	Limit   int32           `json:"limit"`
	Offset  int32           `json:"offset"`
}

// ListAuditLogs handles GET /v1/bookings/{uid}/audit. All policy denials map
// to 403 with the denial code in the body; the status deliberately does not
// distinguish "no such booking" from "not allowed to see it".
func (s *Server) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED")
		return
	}
	orgID, _ := middleware.GetOrgID(r.Context())

	bookingUID := r.PathValue("uid")
	if bookingUID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "INVALID_BOOKING_UID")
		return
	}

	limit, ok := queryInt32(r, "limit")
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "INVALID_PAGINATION")
		return
	}
	offset, ok := queryInt32(r, "offset")
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "INVALID_PAGINATION")
		return
	}

	entries, err := s.svc.ListForBooking(r.Context(), bookingUID, userID, orgID, limit, offset)
	if err != nil {
		if reason, denied := access.Denied(err); denied {
			middleware.WriteError(w, http.StatusForbidden, string(reason))
			return
		}
		s.logger.Error("audit access check failed", "booking_uid", bookingUID, "error", err)
		middleware.WriteError(w, http.StatusInternalServerError, "INTERNAL")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, toListResponse(entries, limit, offset))
}

func toListResponse(entries []*domain.Entry, limit, offset int32) listResponse {
	resp := listResponse{Entries: make([]entryResponse, 0, len(entries)), Limit: limit, Offset: offset}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, entryResponse{
			ID:          e.ID,
			BookingUID:  e.BookingUID,
			ActorUserID: e.ActorUserID,
			Action:      e.Action,
			Resource:    e.Resource,
			IP:          e.IP,
			Metadata:    e.Metadata,
			CreatedAt:   e.CreatedAt,
		})
	}
	return resp
}

// queryInt32 parses an optional non-negative int32 query parameter. Returns
// (0, true) when the parameter is absent.
func queryInt32(r *http.Request, name string) (int32, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		return 0, false
	}
	return int32(v), true
}
