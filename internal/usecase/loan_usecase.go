package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/infrastructure/metrics"
)

// LoanUseCase handles loan issuing, repayments and ledger corrections.
type LoanUseCase struct {
	txManager  TransactionManager
	loanRepo   LoanRepository
	loanTxRepo LoanTransactionRepository
	memberRepo MemberRepository
	auditRepo  AuditRepository
	idGen      IDGenerator
	retrier    Retrier
	metrics    *metrics.Metrics
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	loanTxRepo LoanTransactionRepository,
	memberRepo MemberRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
) *LoanUseCase {
	return &LoanUseCase{
		txManager:  txManager,
		loanRepo:   loanRepo,
		loanTxRepo: loanTxRepo,
		memberRepo: memberRepo,
		auditRepo:  auditRepo,
		idGen:      idGen,
	}
}

// WithRetrier makes the reconciling write paths retry on transient database
// errors. The loan row lock makes deadlocks with concurrent statement reads
// possible under load.
func (uc *LoanUseCase) WithRetrier(r Retrier) *LoanUseCase {
	uc.retrier = r
	return uc
}

// WithMetrics enables Prometheus instrumentation of the loan paths.
func (uc *LoanUseCase) WithMetrics(m *metrics.Metrics) *LoanUseCase {
	uc.metrics = m
	return uc
}

func (uc *LoanUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}
	return uc.retrier.Retry(ctx, op)
}

// CreateLoanInput represents input for issuing a loan.
type CreateLoanInput struct {
	MemberID  string
	Principal decimal.Decimal
	Months    int
	Purpose   string
	IssuedAt  *time.Time
}

// CreateLoan issues a new loan. The loan starts PENDING with the full
// principal outstanding and no current month.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, input CreateLoanInput) (*domain.Loan, error) {
	member, err := uc.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	if !member.IsActive() {
		return nil, domain.ErrMemberInactive
	}

	now := time.Now().UTC()

	issuedAt := now
	if input.IssuedAt != nil {
		issuedAt = *input.IssuedAt
	}

	loan := &domain.Loan{
		ID:                 uc.idGen.Generate(),
		MemberID:           input.MemberID,
		Principal:          input.Principal,
		Months:             input.Months,
		Remaining:          input.Principal,
		CurrentMonth:       0,
		TotalPrincipalPaid: decimal.Zero,
		Status:             domain.LoanPending,
		Purpose:            input.Purpose,
		IssuedAt:           issuedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	if err := uc.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoansCreated.Inc()
	}

	return loan, nil
}

// RecordRepaymentInput represents input for recording a repayment.
type RecordRepaymentInput struct {
	LoanID string
	Month  int
	Amount decimal.Decimal
	Actor  string
}

// RecordRepayment records a repayment against a loan and brings the loan's
// derived fields up to date. The insert, the read-back of the full
// transaction set and the write-back of derived fields happen in one
// database transaction so a concurrent mutation can never observe or
// persist a half-updated loan.
//
// This is the one path that mints CompletedAt: when the reconciled state is
// complete and the loan has no timestamp yet, the repayment that caused
// completion stamps it.
func (uc *LoanUseCase) RecordRepayment(ctx context.Context, input RecordRepaymentInput) (*domain.LoanTransaction, error) {
	now := time.Now().UTC()

	lt := &domain.LoanTransaction{
		ID:         uc.idGen.Generate(),
		LoanID:     input.LoanID,
		Month:      input.Month,
		Amount:     input.Amount,
		RecordedAt: now,
		CreatedAt:  now,
	}

	if err := lt.Validate(); err != nil {
		return nil, err
	}

	var newlyCompleted bool
	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, input.LoanID)
		if err != nil {
			return err
		}

		if loan.Status == domain.LoanCompleted {
			return domain.ErrLoanNotActive
		}

		if err := uc.loanTxRepo.Create(ctx, tx, lt); err != nil {
			return err
		}

		txs, err := uc.loanTxRepo.ListByLoan(ctx, tx, loan.ID)
		if err != nil {
			return err
		}

		state := loan.Reconcile(txs)
		if state.Status == domain.LoanCompleted && state.CompletedAt == nil {
			state.CompletedAt = &now
			newlyCompleted = true
		}

		if err := uc.loanRepo.UpdateDerived(ctx, tx, loan.ID, state, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RepaymentsRecorded.Inc()
		amount, _ := input.Amount.Float64()
		uc.metrics.RepaymentAmount.Observe(amount)
		if newlyCompleted {
			uc.metrics.LoansCompleted.Inc()
		}
		uc.metrics.ReconcileDuration.Observe(time.Since(now).Seconds())
	}

	uc.audit(ctx, input.Actor, domain.AuditActionLoanRepaymentRecord, lt.LoanID, nil, domain.MarshalState(lt))

	return lt, nil
}

// DeleteTransactionInput represents input for removing a recorded repayment.
type DeleteTransactionInput struct {
	TransactionID string
	Actor         string
}

// DeleteTransaction removes a recorded repayment and recomputes the owning
// loan's derived fields from the surviving transaction set. The delete, the
// read-back and the derived-field update are one atomic unit; on failure
// nothing is persisted.
//
// A loan completed by the deleted repayment reverts to ACTIVE or PENDING
// with CompletedAt cleared. If the loan stays complete, its existing
// CompletedAt is carried through unchanged.
func (uc *LoanUseCase) DeleteTransaction(ctx context.Context, input DeleteTransactionInput) error {
	lt, err := uc.loanTxRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	var before, after domain.JSON
	err = uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, lt.LoanID)
		if err != nil {
			return err
		}

		before = domain.MarshalState(loan)

		if err := uc.loanTxRepo.Delete(ctx, tx, lt.ID); err != nil {
			return err
		}

		remaining, err := uc.loanTxRepo.ListByLoan(ctx, tx, loan.ID)
		if err != nil {
			return err
		}

		state := loan.Reconcile(remaining)

		if err := uc.loanRepo.UpdateDerived(ctx, tx, loan.ID, state, now); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		loan.Apply(state, now)
		after = domain.MarshalState(loan)
		return nil
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.LoanTransactionsDeleted.Inc()
	}

	uc.audit(ctx, input.Actor, domain.AuditActionLoanTransactionDelete, lt.ID, before, after)

	return nil
}

// GetLoan retrieves a loan together with its transactions.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*domain.Loan, []*domain.LoanTransaction, error) {
	loan, err := uc.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	txs, err := uc.loanTxRepo.ListByLoan(ctx, nil, id)
	if err != nil {
		return nil, nil, err
	}

	return loan, txs, nil
}

// ListLoansByMemberInput represents input for listing a member's loans.
type ListLoansByMemberInput struct {
	MemberID string
	Limit    int
	Offset   int
}

// ListLoansByMember lists loans for a member.
func (uc *LoanUseCase) ListLoansByMember(ctx context.Context, input ListLoansByMemberInput) ([]*domain.Loan, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.loanRepo.ListByMember(ctx, input.MemberID, limit, offset)
}

// ListLoans lists all loans.
func (uc *LoanUseCase) ListLoans(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.loanRepo.List(ctx, limit, offset)
}

func (uc *LoanUseCase) audit(ctx context.Context, actor string, action domain.AuditAction, resourceID string, before, after domain.JSON) {
	if uc.auditRepo == nil {
		return
	}

	// Audit writes are best effort; the ledger mutation has already
	// committed.
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       actor,
		Action:       string(action),
		ResourceType: "loan",
		ResourceID:   resourceID,
		BeforeState:  before,
		AfterState:   after,
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
