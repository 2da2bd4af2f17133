package handler

import (
	"context"
	"net/http"

	"github.com/tindi/chamaledger/internal/adapter/http/middleware"
	"github.com/tindi/chamaledger/internal/usecase"
)

// DashboardService defines the behavior needed by DashboardHandler.
type DashboardService interface {
	GetGroupSummary(ctx context.Context) (*usecase.GroupSummary, error)
	GetMemberSummary(ctx context.Context, memberID string) (*usecase.MemberSummary, error)
}

// DashboardHandler handles dashboard rollup requests.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Get returns a rollup shaped by the caller's role: admins and treasurers
// see group totals, a member account linked to a member record sees only
// its own figures.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if session.Role.CanRecord() {
		summary, err := h.dashboardUC.GetGroupSummary(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to build summary", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, summary)
		return
	}

	if session.MemberID == nil {
		writeError(w, http.StatusForbidden, "no member record linked to this account", "")
		return
	}

	summary, err := h.dashboardUC.GetMemberSummary(r.Context(), *session.MemberID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
