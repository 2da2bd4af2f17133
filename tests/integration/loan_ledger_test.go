package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tindi/chamaledger/internal/adapter/repository/postgres"
	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
	"github.com/tindi/chamaledger/tests/testutil"
)

func newLoanUseCase(db *testutil.TestDB) *usecase.LoanUseCase {
	pool := db.Pool
	return usecase.NewLoanUseCase(
		postgres.NewTxManager(pool),
		postgres.NewLoanRepository(pool),
		postgres.NewLoanTransactionRepository(pool),
		postgres.NewMemberRepository(pool),
		postgres.NewAuditRepository(pool),
		postgres.NewULIDGenerator(),
	)
}

func TestLoanLedger_RepaymentLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	loanUC := newLoanUseCase(testDB)

	member := testDB.CreateTestMember(ctx, "Achieng Odhiambo")
	loan := testDB.CreateTestLoan(ctx, member.ID, "1200", 12)

	// Pay every month in full. The final payment completes the loan.
	for month := 1; month <= 12; month++ {
		_, err := loanUC.RecordRepayment(ctx, usecase.RecordRepaymentInput{
			LoanID: loan.ID,
			Month:  month,
			Amount: decimal.RequireFromString("100"),
			Actor:  "admin-1",
		})
		if err != nil {
			t.Fatalf("month %d repayment failed: %v", month, err)
		}
	}

	got, txs, err := loanUC.GetLoan(ctx, loan.ID)
	if err != nil {
		t.Fatalf("failed to load loan: %v", err)
	}

	if got.Status != domain.LoanCompleted {
		t.Errorf("expected completed loan, got %s", got.Status)
	}
	if !got.Remaining.IsZero() {
		t.Errorf("expected zero remaining, got %s", got.Remaining)
	}
	if got.CurrentMonth != 12 {
		t.Errorf("expected current month 12, got %d", got.CurrentMonth)
	}
	if got.CompletedAt == nil {
		t.Error("expected completion timestamp")
	}
	if len(txs) != 12 {
		t.Fatalf("expected 12 transactions, got %d", len(txs))
	}

	// Further repayments against a completed loan are rejected.
	_, err = loanUC.RecordRepayment(ctx, usecase.RecordRepaymentInput{
		LoanID: loan.ID,
		Month:  13,
		Amount: decimal.RequireFromString("100"),
		Actor:  "admin-1",
	})
	if err != domain.ErrLoanNotActive {
		t.Errorf("expected ErrLoanNotActive, got %v", err)
	}

	// Deleting the final repayment reverts completion.
	last := txs[len(txs)-1]
	if err := loanUC.DeleteTransaction(ctx, usecase.DeleteTransactionInput{
		TransactionID: last.ID,
		Actor:         "admin-1",
	}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, txs, err = loanUC.GetLoan(ctx, loan.ID)
	if err != nil {
		t.Fatalf("failed to reload loan: %v", err)
	}

	if got.Status != domain.LoanActive {
		t.Errorf("expected active loan after revert, got %s", got.Status)
	}
	if !got.Remaining.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected remaining 100, got %s", got.Remaining)
	}
	if got.CurrentMonth != 11 {
		t.Errorf("expected current month 11, got %d", got.CurrentMonth)
	}
	if got.CompletedAt != nil {
		t.Error("expected completion timestamp cleared")
	}
	if len(txs) != 11 {
		t.Errorf("expected 11 transactions, got %d", len(txs))
	}
}

func TestLoanLedger_AuditTrail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	loanUC := newLoanUseCase(testDB)
	auditRepo := postgres.NewAuditRepository(testDB.Pool)

	member := testDB.CreateTestMember(ctx, "Mutua Musyoka")
	loan := testDB.CreateTestLoan(ctx, member.ID, "600", 6)

	lt, err := loanUC.RecordRepayment(ctx, usecase.RecordRepaymentInput{
		LoanID: loan.ID,
		Month:  1,
		Amount: decimal.RequireFromString("100"),
		Actor:  "admin-1",
	})
	if err != nil {
		t.Fatalf("repayment failed: %v", err)
	}

	logs, err := auditRepo.GetByResource(ctx, "loan", loan.ID)
	if err != nil {
		t.Fatalf("failed to load audit logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(logs))
	}
	if logs[0].Action != string(domain.AuditActionLoanRepaymentRecord) {
		t.Errorf("unexpected action %s", logs[0].Action)
	}
	if logs[0].UserID != "admin-1" {
		t.Errorf("unexpected actor %s", logs[0].UserID)
	}

	if err := loanUC.DeleteTransaction(ctx, usecase.DeleteTransactionInput{
		TransactionID: lt.ID,
		Actor:         "admin-1",
	}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	logs, err = auditRepo.GetByResource(ctx, "loan", lt.ID)
	if err != nil {
		t.Fatalf("failed to load audit logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 delete audit log, got %d", len(logs))
	}
	if logs[0].BeforeState == nil || logs[0].AfterState == nil {
		t.Error("expected before and after state on ledger correction")
	}
}

func TestLoanLedger_SplitMonthRepayments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	loanUC := newLoanUseCase(testDB)

	member := testDB.CreateTestMember(ctx, "Njeri Kariuki")
	loan := testDB.CreateTestLoan(ctx, member.ID, "300", 3)

	// Two partial payments in the same month are both counted.
	for _, amount := range []string{"60", "40"} {
		_, err := loanUC.RecordRepayment(ctx, usecase.RecordRepaymentInput{
			LoanID: loan.ID,
			Month:  1,
			Amount: decimal.RequireFromString(amount),
			Actor:  "treasurer-1",
		})
		if err != nil {
			t.Fatalf("repayment failed: %v", err)
		}
	}

	got, txs, err := loanUC.GetLoan(ctx, loan.ID)
	if err != nil {
		t.Fatalf("failed to load loan: %v", err)
	}

	if !got.Remaining.Equal(decimal.RequireFromString("200")) {
		t.Errorf("expected remaining 200, got %s", got.Remaining)
	}
	if got.CurrentMonth != 1 {
		t.Errorf("expected current month 1, got %d", got.CurrentMonth)
	}
	if !got.TotalPrincipalPaid.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected total paid 100, got %s", got.TotalPrincipalPaid)
	}
	if len(txs) != 2 {
		t.Errorf("expected 2 transactions, got %d", len(txs))
	}
}
