package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tindi/chamaledger/internal/adapter/http/dto"
	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

// CycleService defines the behavior needed by CycleHandler.
type CycleService interface {
	CreateCycle(ctx context.Context, input usecase.CreateCycleInput) (*domain.Cycle, error)
	CloseCycle(ctx context.Context, input usecase.CloseCycleInput) (*domain.Cycle, error)
	RecordContribution(ctx context.Context, input usecase.RecordContributionInput) (*domain.Contribution, error)
	GetCycle(ctx context.Context, id string) (*domain.CycleSummary, error)
	ListCycles(ctx context.Context, input usecase.ListCyclesInput) ([]*domain.Cycle, error)
	ListContributions(ctx context.Context, cycleID string) ([]*domain.Contribution, error)
}

// CycleHandler handles cycle-related HTTP requests.
type CycleHandler struct {
	cycleUC CycleService
}

// NewCycleHandler creates a new CycleHandler.
func NewCycleHandler(cycleUC CycleService) *CycleHandler {
	return &CycleHandler{cycleUC: cycleUC}
}

// Create opens a new contribution cycle.
func (h *CycleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cycle, err := h.cycleUC.CreateCycle(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create cycle", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CycleFromDomain(cycle))
}

// Get retrieves a cycle with its contribution rollup.
func (h *CycleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing cycle ID", "")
		return
	}

	summary, err := h.cycleUC.GetCycle(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get cycle", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CycleSummaryFromDomain(summary))
}

// List lists cycles.
func (h *CycleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	cycles, err := h.cycleUC.ListCycles(r.Context(), usecase.ListCyclesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cycles", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CyclesFromDomain(cycles))
}

// Close closes an open cycle.
func (h *CycleHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing cycle ID", "")
		return
	}

	var req dto.CloseCycleRequest
	if r.Body != nil {
		// body is optional; an empty close carries no payout member
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	cycle, err := h.cycleUC.CloseCycle(r.Context(), usecase.CloseCycleInput{
		CycleID:        id,
		PayoutMemberID: req.PayoutMemberID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close cycle", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CycleFromDomain(cycle))
}

// CreateContribution records a contribution into a cycle.
func (h *CycleHandler) CreateContribution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing cycle ID", "")
		return
	}

	var req dto.CreateContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	contribution, err := h.cycleUC.RecordContribution(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record contribution", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ContributionFromDomain(contribution))
}

// ListContributions lists a cycle's contributions.
func (h *CycleHandler) ListContributions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing cycle ID", "")
		return
	}

	contributions, err := h.cycleUC.ListContributions(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list contributions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ContributionsFromDomain(contributions))
}
