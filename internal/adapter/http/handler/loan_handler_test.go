package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/adapter/http/dto"
	"github.com/tindi/chamaledger/internal/adapter/http/middleware"
	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

type loanServiceStub struct {
	createFn       func(ctx context.Context, input usecase.CreateLoanInput) (*domain.Loan, error)
	repaymentFn    func(ctx context.Context, input usecase.RecordRepaymentInput) (*domain.LoanTransaction, error)
	deleteFn       func(ctx context.Context, input usecase.DeleteTransactionInput) error
	getFn          func(ctx context.Context, id string) (*domain.Loan, []*domain.LoanTransaction, error)
	listByMemberFn func(ctx context.Context, input usecase.ListLoansByMemberInput) ([]*domain.Loan, error)
	listFn         func(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
}

func (s *loanServiceStub) CreateLoan(ctx context.Context, input usecase.CreateLoanInput) (*domain.Loan, error) {
	return s.createFn(ctx, input)
}

func (s *loanServiceStub) RecordRepayment(ctx context.Context, input usecase.RecordRepaymentInput) (*domain.LoanTransaction, error) {
	return s.repaymentFn(ctx, input)
}

func (s *loanServiceStub) DeleteTransaction(ctx context.Context, input usecase.DeleteTransactionInput) error {
	return s.deleteFn(ctx, input)
}

func (s *loanServiceStub) GetLoan(ctx context.Context, id string) (*domain.Loan, []*domain.LoanTransaction, error) {
	return s.getFn(ctx, id)
}

func (s *loanServiceStub) ListLoansByMember(ctx context.Context, input usecase.ListLoansByMemberInput) ([]*domain.Loan, error) {
	return s.listByMemberFn(ctx, input)
}

func (s *loanServiceStub) ListLoans(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	return s.listFn(ctx, limit, offset)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withSession(req *http.Request, session *domain.Session) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.SessionContextKey, session))
}

func TestLoanHandler_Create_Success(t *testing.T) {
	loan := &domain.Loan{
		ID:        "loan-1",
		MemberID:  "mem-1",
		Principal: decimal.RequireFromString("1200"),
		Months:    12,
		Remaining: decimal.RequireFromString("1200"),
		Status:    domain.LoanPending,
	}

	var captured usecase.CreateLoanInput
	handler := NewLoanHandler(&loanServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateLoanInput) (*domain.Loan, error) {
			captured = input
			return loan, nil
		},
	})

	body, _ := json.Marshal(dto.CreateLoanRequest{
		MemberID:  "mem-1",
		Principal: decimal.RequireFromString("1200"),
		Months:    12,
	})

	req := httptest.NewRequest(http.MethodPost, "/loans", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.MemberID != "mem-1" || captured.Months != 12 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.LoanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != domain.LoanPending {
		t.Fatalf("expected pending loan, got %s", resp.Status)
	}
}

func TestLoanHandler_Create_InactiveMember(t *testing.T) {
	handler := NewLoanHandler(&loanServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateLoanInput) (*domain.Loan, error) {
			return nil, domain.ErrMemberInactive
		},
	})

	body, _ := json.Marshal(dto.CreateLoanRequest{MemberID: "mem-1", Months: 12})
	req := httptest.NewRequest(http.MethodPost, "/loans", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoanHandler_CreateRepayment_PassesActor(t *testing.T) {
	var captured usecase.RecordRepaymentInput
	handler := NewLoanHandler(&loanServiceStub{
		repaymentFn: func(ctx context.Context, input usecase.RecordRepaymentInput) (*domain.LoanTransaction, error) {
			captured = input
			return &domain.LoanTransaction{ID: "lt-1", LoanID: input.LoanID, Month: input.Month, Amount: input.Amount}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateRepaymentRequest{
		Month:  3,
		Amount: decimal.RequireFromString("100"),
	})

	req := httptest.NewRequest(http.MethodPost, "/loans/loan-1/transactions", bytes.NewReader(body))
	req = withURLParam(req, "id", "loan-1")
	req = withSession(req, &domain.Session{UserID: "user-1", Role: domain.RoleTreasurer})
	rec := httptest.NewRecorder()

	handler.CreateRepayment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.LoanID != "loan-1" || captured.Month != 3 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if captured.Actor != "user-1" {
		t.Fatalf("expected actor from session, got %q", captured.Actor)
	}
}

func TestLoanHandler_CreateRepayment_CompletedLoan(t *testing.T) {
	handler := NewLoanHandler(&loanServiceStub{
		repaymentFn: func(ctx context.Context, input usecase.RecordRepaymentInput) (*domain.LoanTransaction, error) {
			return nil, domain.ErrLoanNotActive
		},
	})

	body, _ := json.Marshal(dto.CreateRepaymentRequest{Month: 1, Amount: decimal.RequireFromString("100")})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/loans/loan-1/transactions", bytes.NewReader(body)), "id", "loan-1")
	rec := httptest.NewRecorder()

	handler.CreateRepayment(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoanHandler_DeleteTransaction_Success(t *testing.T) {
	var captured usecase.DeleteTransactionInput
	handler := NewLoanHandler(&loanServiceStub{
		deleteFn: func(ctx context.Context, input usecase.DeleteTransactionInput) error {
			captured = input
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/loan-transactions/lt-1", nil)
	req = withURLParam(req, "id", "lt-1")
	req = withSession(req, &domain.Session{UserID: "admin-1", Role: domain.RoleAdmin})
	rec := httptest.NewRecorder()

	handler.DeleteTransaction(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.TransactionID != "lt-1" || captured.Actor != "admin-1" {
		t.Fatalf("unexpected input %+v", captured)
	}
}

func TestLoanHandler_DeleteTransaction_NotFound(t *testing.T) {
	handler := NewLoanHandler(&loanServiceStub{
		deleteFn: func(ctx context.Context, input usecase.DeleteTransactionInput) error {
			return domain.ErrLoanTransactionNotFound
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/loan-transactions/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	handler.DeleteTransaction(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLoanHandler_Get_WithTransactions(t *testing.T) {
	handler := NewLoanHandler(&loanServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Loan, []*domain.LoanTransaction, error) {
			return &domain.Loan{ID: id, Status: domain.LoanActive},
				[]*domain.LoanTransaction{
					{ID: "lt-1", LoanID: id, Month: 1, Amount: decimal.RequireFromString("100")},
					{ID: "lt-2", LoanID: id, Month: 2, Amount: decimal.RequireFromString("100")},
				}, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/loan-1", nil), "id", "loan-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.LoanDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(resp.Transactions))
	}
}
