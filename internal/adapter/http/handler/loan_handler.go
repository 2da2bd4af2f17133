package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tindi/chamaledger/internal/adapter/http/dto"
	"github.com/tindi/chamaledger/internal/adapter/http/middleware"
	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

// LoanService defines the behavior needed by LoanHandler.
type LoanService interface {
	CreateLoan(ctx context.Context, input usecase.CreateLoanInput) (*domain.Loan, error)
	RecordRepayment(ctx context.Context, input usecase.RecordRepaymentInput) (*domain.LoanTransaction, error)
	DeleteTransaction(ctx context.Context, input usecase.DeleteTransactionInput) error
	GetLoan(ctx context.Context, id string) (*domain.Loan, []*domain.LoanTransaction, error)
	ListLoansByMember(ctx context.Context, input usecase.ListLoansByMemberInput) ([]*domain.Loan, error)
	ListLoans(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
}

// LoanHandler handles loan-related HTTP requests.
type LoanHandler struct {
	loanUC LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanUC LoanService) *LoanHandler {
	return &LoanHandler{loanUC: loanUC}
}

// Create issues a new loan.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	loan, err := h.loanUC.CreateLoan(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create loan", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoanFromDomain(loan))
}

// Get retrieves a loan with its full transaction set.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	loan, txs, err := h.loanUC.GetLoan(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get loan", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanDetailResponse{
		Loan:         dto.LoanFromDomain(loan),
		Transactions: dto.LoanTransactionsFromDomain(txs),
	})
}

// List lists all loans.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	loans, err := h.loanUC.ListLoans(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list loans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoansFromDomain(loans))
}

// ListByMember lists a member's loans.
func (h *LoanHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "missing member ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	loans, err := h.loanUC.ListLoansByMember(r.Context(), usecase.ListLoansByMemberInput{
		MemberID: memberID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list loans", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoansFromDomain(loans))
}

// CreateRepayment records a repayment against a loan.
func (h *LoanHandler) CreateRepayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing loan ID", "")
		return
	}

	var req dto.CreateRepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	lt, err := h.loanUC.RecordRepayment(r.Context(), req.ToUseCaseInput(id, actorFromContext(r.Context())))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record repayment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoanTransactionFromDomain(lt))
}

// DeleteTransaction removes a recorded repayment. The owning loan's
// derived fields are recomputed in the same database transaction.
func (h *LoanHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	err := h.loanUC.DeleteTransaction(r.Context(), usecase.DeleteTransactionInput{
		TransactionID: id,
		Actor:         actorFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func actorFromContext(ctx context.Context) string {
	if session, ok := middleware.SessionFromContext(ctx); ok {
		return session.UserID
	}
	return ""
}
