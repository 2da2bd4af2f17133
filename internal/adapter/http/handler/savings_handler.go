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

// SavingsService defines the behavior needed by SavingsHandler.
type SavingsService interface {
	RecordDeposit(ctx context.Context, input usecase.RecordDepositInput) (*domain.SavingsDeposit, error)
	ListDeposits(ctx context.Context, input usecase.ListDepositsInput) ([]*domain.SavingsDeposit, error)
	GetBalance(ctx context.Context, memberID string) (*domain.SavingsBalance, error)
}

// SavingsHandler handles savings-related HTTP requests.
type SavingsHandler struct {
	savingsUC SavingsService
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsUC SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsUC: savingsUC}
}

// CreateDeposit records a savings deposit.
func (h *SavingsHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	deposit, err := h.savingsUC.RecordDeposit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DepositFromDomain(deposit))
}

// ListByMember lists a member's deposits.
func (h *SavingsHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "missing member ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	deposits, err := h.savingsUC.ListDeposits(r.Context(), usecase.ListDepositsInput{
		MemberID: memberID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositsFromDomain(deposits))
}

// GetBalance returns a member's savings rollup.
func (h *SavingsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "missing member ID", "")
		return
	}

	balance, err := h.savingsUC.GetBalance(r.Context(), memberID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}
